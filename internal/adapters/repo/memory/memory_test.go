package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/skywholesale/internal/domain"
)

func prod(id int64, title, price string) domain.Product {
	p := decimal.RequireFromString(price)
	return domain.Product{ID: id, Title: title, Price: p, BasePrice: p, Type: domain.TypeCase}
}

func titles(ps []domain.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Title)
	}
	return out
}

func TestProductRepo_AddPrependsAndSnapshotsStayPut(t *testing.T) {
	ctx := context.Background()
	r := NewProductRepo([]domain.Product{prod(1, "a", "1"), prod(2, "b", "2")})
	snap := r.List(ctx)

	require.NoError(t, r.Add(ctx, prod(3, "c", "3")))
	assert.Equal(t, []string{"c", "a", "b"}, titles(r.List(ctx)))
	assert.Equal(t, []string{"a", "b"}, titles(snap))
}

func TestProductRepo_UpdateDeleteFind(t *testing.T) {
	ctx := context.Background()
	r := NewProductRepo([]domain.Product{prod(1, "a", "1"), prod(2, "b", "2")})

	require.NoError(t, r.Update(ctx, prod(2, "b2", "5")))
	p, err := r.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "b2", p.Title)
	assert.Equal(t, []string{"a", "b2"}, titles(r.List(ctx)))

	assert.ErrorIs(t, r.Update(ctx, prod(9, "x", "1")), domain.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, 9), domain.ErrNotFound)

	require.NoError(t, r.Delete(ctx, 1))
	_, err = r.FindByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, r.List(ctx), 1)
}

func TestProductRepo_FindByIDReturnsCopy(t *testing.T) {
	ctx := context.Background()
	seed := prod(1, "a", "1")
	seed.Badges = []domain.Badge{{Text: "HOT", Color: domain.BadgeRed}}
	r := NewProductRepo([]domain.Product{seed})

	p, err := r.FindByID(ctx, 1)
	require.NoError(t, err)
	p.Badges[0].Text = "changed"

	again, _ := r.FindByID(ctx, 1)
	assert.Equal(t, "HOT", again.Badges[0].Text)
}

func TestProductRepo_Search(t *testing.T) {
	ctx := context.Background()
	r := NewProductRepo([]domain.Product{prod(1, "Pretzels", "9"), prod(2, "Almonds", "3")})
	c := domain.DefaultCriteria()
	c.Sort = domain.SortPriceAsc
	assert.Equal(t, []string{"Almonds", "Pretzels"}, titles(r.Search(ctx, c)))
}

func TestCartRepo_AddMergesByProduct(t *testing.T) {
	ctx := context.Background()
	c := NewCartRepo()
	require.NoError(t, c.Add(ctx, prod(1, "a", "10"), 2))
	require.NoError(t, c.Add(ctx, prod(2, "b", "5"), 1))
	require.NoError(t, c.Add(ctx, prod(1, "a", "10"), 3))

	items := c.Items(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].Product.ID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 6, c.Count(ctx))

	assert.ErrorIs(t, c.Add(ctx, prod(3, "c", "1"), 0), domain.ErrInvalidQuantity)
}

func TestCartRepo_UpdateQuantityClampsAtOne(t *testing.T) {
	ctx := context.Background()
	c := NewCartRepo()
	require.NoError(t, c.Add(ctx, prod(1, "a", "10"), 3))

	require.NoError(t, c.UpdateQuantity(ctx, 1, -100))
	assert.Equal(t, 1, c.Items(ctx)[0].Quantity)

	require.NoError(t, c.UpdateQuantity(ctx, 1, 4))
	assert.Equal(t, 5, c.Items(ctx)[0].Quantity)

	assert.ErrorIs(t, c.UpdateQuantity(ctx, 42, 1), domain.ErrNotFound)
}

func TestCartRepo_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	c := NewCartRepo()
	require.NoError(t, c.Add(ctx, prod(1, "a", "10"), 1))
	require.NoError(t, c.Add(ctx, prod(2, "b", "10"), 1))

	require.NoError(t, c.Remove(ctx, 1))
	assert.ErrorIs(t, c.Remove(ctx, 1), domain.ErrNotFound)
	assert.Len(t, c.Items(ctx), 1)

	c.Clear(ctx)
	assert.Empty(t, c.Items(ctx))
	assert.Equal(t, 0, c.Count(ctx))
}

func TestCartRepo_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	c := NewCartRepo()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Add(ctx, prod(1, "a", "1"), 1)
		}()
	}
	wg.Wait()
	require.Len(t, c.Items(ctx), 1)
	assert.Equal(t, 50, c.Count(ctx))
}

func TestCartRepo_DrainEmptiesInOneStep(t *testing.T) {
	ctx := context.Background()
	c := NewCartRepo()
	require.NoError(t, c.Add(ctx, prod(1, "a", "10"), 2))
	require.NoError(t, c.Add(ctx, prod(2, "b", "5"), 1))

	got, err := c.Drain(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Empty(t, c.Items(ctx))

	require.NoError(t, c.Add(ctx, prod(3, "c", "1"), 1))
	assert.Len(t, got, 2, "drained lines do not see later adds")

	got, err = c.Drain(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	got, err = c.Drain(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCartRepo_DrainRacingAddsLosesNothing(t *testing.T) {
	ctx := context.Background()
	c := NewCartRepo()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		drained int
	)
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.Add(ctx, prod(1, "a", "1"), 1)
		}()
		go func() {
			defer wg.Done()
			items, err := c.Drain(ctx)
			if err != nil {
				return
			}
			mu.Lock()
			for _, it := range items {
				drained += it.Quantity
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, drained+c.Count(ctx))
}

func TestRepos_CanceledContextRejectsWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewProductRepo(nil)
	assert.ErrorIs(t, r.Add(ctx, prod(1, "a", "1")), context.Canceled)
	assert.Empty(t, r.List(ctx))

	c := NewCartRepo()
	assert.ErrorIs(t, c.Add(ctx, prod(1, "a", "1"), 1), context.Canceled)
	_, err := c.Drain(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
