package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/comeoffice/rank_booking/models"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// OrderEvent is the summary pushed to connected admin dashboards when an
// order is created or approved.
type OrderEvent struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"orderId"`
	PlanName      string    `json:"planName"`
	Amount        float64   `json:"amount"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	CreatedAt     time.Time `json:"createdAt"`
}

var clients = make(map[*websocket.Conn]bool)
var clientsMu sync.RWMutex
var Register = make(chan *websocket.Conn)
var Unregister = make(chan *websocket.Conn)
var Broadcast = make(chan OrderEvent, 32)

func RunHub() {
	for {
		select {
		case conn := <-Register:
			log.Println("Admin client connected")
			clientsMu.Lock()
			clients[conn] = true
			clientsMu.Unlock()
		case conn := <-Unregister:
			log.Println("Admin client disconnected")
			clientsMu.Lock()
			delete(clients, conn)
			clientsMu.Unlock()
		case event := <-Broadcast:
			clientsMu.RLock()
			var dead []*websocket.Conn
			for conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error sending order event to admin client: %v", err)
					conn.Close()
					dead = append(dead, conn)
				}
			}
			clientsMu.RUnlock()
			if len(dead) > 0 {
				clientsMu.Lock()
				for _, conn := range dead {
					delete(clients, conn)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// BroadcastOrder queues an order summary for all connected admin clients.
// Never blocks the caller; if the hub is backed up the event is dropped.
func BroadcastOrder(order models.Order) {
	event := OrderEvent{
		ID:            order.ID.String(),
		OrderID:       order.OrderID,
		PlanName:      order.PlanName,
		Amount:        order.Amount,
		Name:          order.Name,
		Phone:         order.Phone,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAt,
	}
	select {
	case Broadcast <- event:
	default:
		log.Printf("⚠️ Admin event channel full, dropping event for order %s", order.OrderID)
	}
}

// UpgradeRequired gates the websocket route behind a proper upgrade request.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// AdminSocketHandler keeps the connection registered until the client goes
// away. Admin dashboards only listen; inbound messages are discarded.
func AdminSocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		Register <- conn
		defer func() {
			Unregister <- conn
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	})
}
