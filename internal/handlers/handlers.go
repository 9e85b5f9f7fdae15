// Package handlers exposes the rendering operations over HTTP and
// WebSocket. It maps faults onto status codes and nothing more; all layout
// and printing logic lives below it.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"

	"service_print_receipt/internal/barcode"
	"service_print_receipt/internal/driver"
	"service_print_receipt/internal/model"
	"service_print_receipt/internal/printer"
	"service_print_receipt/internal/render"
)

type Server struct {
	addr          string
	allowedOrigin string
	renderer      *render.Renderer
	printer       *printer.Service
	log           *zap.Logger
}

func NewServer(addr, allowedOrigin string, renderer *render.Renderer, prn *printer.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		addr:          addr,
		allowedOrigin: allowedOrigin,
		renderer:      renderer,
		printer:       prn,
		log:           log,
	}
}

func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/print-receipt", s.handlePrintReceipt)
	mux.HandleFunc("/api/print-deposit", s.handlePrintDeposit)
	mux.HandleFunc("/api/print-barcode", s.handlePrintBarcode)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWebSocket)

	allowedOrigins := handlers.AllowedOrigins([]string{s.allowedOrigin})
	allowedMethods := handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"})
	allowedHeaders := handlers.AllowedHeaders([]string{"Content-Type"})

	server := &http.Server{
		Addr:         s.addr,
		Handler:      handlers.CORS(allowedOrigins, allowedMethods, allowedHeaders)(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.log.Info("server listening", zap.String("addr", s.addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartWithRetry restarts a failed listener a few times before giving up.
// Used by the service wrapper, where the port may still be held by a
// previous instance during restart.
func (s *Server) StartWithRetry(maxRetries int, retryInterval time.Duration) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = s.Start()
		if err == nil {
			return nil
		}
		time.Sleep(retryInterval)
	}
	return fmt.Errorf("server did not start after %d attempts: %w", maxRetries, err)
}

func (s *Server) handlePrintReceipt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var order model.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	seq, report, err := s.renderer.RenderReceipt(order)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.printer.Print(r.Context(), seq); err != nil {
		s.writePrintError(w, err)
		return
	}
	s.writeSuccess(w, "receipt printed", report)
}

func (s *Server) handlePrintDeposit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var order model.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	seq, report, err := s.renderer.RenderDepositSlip(order)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.printer.Print(r.Context(), seq); err != nil {
		s.writePrintError(w, err)
		return
	}
	s.writeSuccess(w, "deposit slip printed", report)
}

func (s *Server) handlePrintBarcode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Identifier string `json:"identifier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	seq, err := s.renderer.RenderBarcode(req.Identifier)
	if err != nil {
		// The standalone operation surfaces a bad identifier to the client
		// instead of degrading like the decorative blocks do.
		if errors.Is(err, barcode.ErrInvalidBarcodeInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := s.printer.Print(r.Context(), seq); err != nil {
		s.writePrintError(w, err)
		return
	}
	s.writeSuccess(w, "barcode printed", nil)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) writeSuccess(w http.ResponseWriter, message string, report *render.Report) {
	resp := map[string]interface{}{
		"status":  "success",
		"message": message,
	}
	if report != nil {
		resp["skippedItems"] = len(report.Skipped)
		resp["decorationDropped"] = report.DecorationDropped
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) writePrintError(w http.ResponseWriter, err error) {
	var fault *driver.Fault
	if errors.As(err, &fault) {
		http.Error(w, fmt.Sprintf("printer error: %v", fault), http.StatusBadGateway)
		return
	}
	http.Error(w, fmt.Sprintf("print failed: %v", err), http.StatusInternalServerError)
}
