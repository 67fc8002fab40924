package httpserver

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/skywholesale/internal/domain"
)

type cartAddReq struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type cartUpdateReq struct {
	ProductID int64 `json:"product_id"`
	Delta     int   `json:"delta"`
}

// GET shows the cart · POST adds {product_id, quantity} · DELETE empties it.
func (s *Server) apiCart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		var req cartAddReq
		if err := decodeJSON(w, r, &req); err != nil || req.ProductID <= 0 {
			http.Error(w, "bad request", 400)
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		if err := s.cart.Add(r.Context(), req.ProductID, req.Quantity); err != nil {
			writeError(w, r, err)
			return
		}
	case http.MethodDelete:
		s.cart.Clear(r.Context())
	default:
		http.Error(w, "method", 405)
		return
	}
	writeJSON(w, 200, newCartView(s.cart.View(r.Context())))
}

// GET /api/cart/count is the unit total for the header cart icon.
func (s *Server) apiCartCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	writeJSON(w, 200, map[string]any{"count": s.cart.Count(r.Context())})
}

// POST /api/cart/update {product_id, delta}; quantities never drop below one.
func (s *Server) apiCartUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req cartUpdateReq
	if err := decodeJSON(w, r, &req); err != nil || req.ProductID <= 0 {
		http.Error(w, "bad request", 400)
		return
	}
	if err := s.cart.UpdateQuantity(r.Context(), req.ProductID, req.Delta); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, 200, newCartView(s.cart.View(r.Context())))
}

// POST /api/cart/remove {product_id}
func (s *Server) apiCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req cartAddReq
	if err := decodeJSON(w, r, &req); err != nil || req.ProductID <= 0 {
		http.Error(w, "bad request", 400)
		return
	}
	if err := s.cart.Remove(r.Context(), req.ProductID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, 200, newCartView(s.cart.View(r.Context())))
}

type orderView struct {
	Number   string         `json:"number"`
	Status   string         `json:"status"`
	Items    []cartItemView `json:"items"`
	Totals   totalsView     `json:"totals"`
	Tracking []trackingView `json:"tracking"`
}

type trackingView struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Done   bool   `json:"done"`
}

func newOrderView(o domain.Order) orderView {
	steps := o.Tracking()
	tv := make([]trackingView, 0, len(steps))
	for _, st := range steps {
		tv = append(tv, trackingView{Status: string(st.Status), Label: st.Label, Done: st.Done})
	}
	return orderView{
		Number:   o.Number,
		Status:   string(o.Status),
		Items:    cartItemViews(o.Items),
		Totals:   newTotalsView(o.Totals),
		Tracking: tv,
	}
}

// POST /api/checkout places the order and empties the cart.
func (s *Server) apiCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	o, err := s.cart.Checkout(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Info().
		Str("order", o.Number).
		Int("units", o.Totals.Units).
		Str("total", money(o.Totals.Total)).
		Str("req_id", RequestIDFrom(r.Context())).
		Msg("order placed")
	writeJSON(w, 201, newOrderView(*o))
}

// GET /api/orders/track?number= shows the confirmation page's static tracker.
func (s *Server) apiOrderTracking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	num := r.URL.Query().Get("number")
	if num != "" && num != domain.ConfirmationNumber {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	o := domain.Order{Number: domain.ConfirmationNumber, Status: domain.OrderStatusProcessing, Items: []domain.CartItem{}}
	writeJSON(w, 200, newOrderView(o))
}
