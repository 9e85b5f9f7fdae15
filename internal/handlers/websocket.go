package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"service_print_receipt/internal/command"
	"service_print_receipt/internal/model"
	"service_print_receipt/internal/render"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Origins are restricted by the CORS layer for the REST API;
		// the job channel accepts all and logs the origin.
		return true
	},
}

type wsMessage struct {
	Command string          `json:"command"`
	Data    json.RawMessage `json:"data"`
}

type wsResponse struct {
	Type              string `json:"type"`
	Message           string `json:"message"`
	SkippedItems      int    `json:"skippedItems,omitempty"`
	DecorationDropped bool   `json:"decorationDropped,omitempty"`
}

// handleWebSocket runs the persistent print-job channel: each message names
// an operation and carries its payload, mirroring the REST endpoints.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.log.Info("websocket connection", zap.String("origin", r.Header.Get("Origin")))
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.sendWSError(conn, "invalid message")
			continue
		}

		switch msg.Command {
		case "printReceipt":
			s.wsPrintOrder(r, conn, msg.Data, "receipt printed", s.renderer.RenderReceipt)
		case "printDeposit":
			s.wsPrintOrder(r, conn, msg.Data, "deposit slip printed", s.renderer.RenderDepositSlip)
		case "printBarcode":
			s.wsPrintBarcode(r, conn, msg.Data)
		default:
			s.sendWSError(conn, "unknown command: "+msg.Command)
		}
	}
}

func (s *Server) wsPrintOrder(r *http.Request, conn *websocket.Conn, data json.RawMessage, okMessage string, renderFn func(model.Order) (command.Sequence, *render.Report, error)) {
	var order model.Order
	if err := json.Unmarshal(data, &order); err != nil {
		s.sendWSError(conn, "invalid order payload")
		return
	}
	seq, report, err := renderFn(order)
	if err != nil {
		s.sendWSError(conn, err.Error())
		return
	}
	if err := s.printer.Print(r.Context(), seq); err != nil {
		s.sendWSError(conn, err.Error())
		return
	}
	s.sendWSResponse(conn, okMessage, report)
}

func (s *Server) wsPrintBarcode(r *http.Request, conn *websocket.Conn, data json.RawMessage) {
	var req struct {
		Identifier string `json:"identifier"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendWSError(conn, "invalid barcode payload")
		return
	}
	seq, err := s.renderer.RenderBarcode(req.Identifier)
	if err != nil {
		s.sendWSError(conn, err.Error())
		return
	}
	if err := s.printer.Print(r.Context(), seq); err != nil {
		s.sendWSError(conn, err.Error())
		return
	}
	s.sendWSResponse(conn, "barcode printed", nil)
}

func (s *Server) sendWSResponse(conn *websocket.Conn, message string, report *render.Report) {
	resp := wsResponse{Type: "printResponse", Message: message}
	if report != nil {
		resp.SkippedItems = len(report.Skipped)
		resp.DecorationDropped = report.DecorationDropped
	}
	if err := conn.WriteJSON(resp); err != nil {
		s.log.Warn("websocket write failed", zap.Error(err))
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(wsResponse{Type: "error", Message: message}); err != nil {
		s.log.Warn("websocket write failed", zap.Error(err))
	}
}
