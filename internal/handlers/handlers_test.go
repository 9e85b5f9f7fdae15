package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service_print_receipt/internal/driver"
	"service_print_receipt/internal/printer"
	"service_print_receipt/internal/render"
)

func testServer(emu *driver.Emulator) *Server {
	renderer := render.NewRenderer(render.Options{}, nil)
	svc := printer.NewService(emu, 0, nil)
	return NewServer(":0", "*", renderer, svc, nil)
}

func TestPrintReceiptEndpoint(t *testing.T) {
	emu := driver.NewEmulator()
	srv := testServer(emu)

	body := `{
		"orderNumber": "1042",
		"items": [
			{"name": "Coffee", "price": "3.50"},
			{"name": "", "price": "1.00"}
		],
		"total": "3.50"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/print-receipt", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.handlePrintReceipt(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Status            string `json:"status"`
		SkippedItems      int    `json:"skippedItems"`
		DecorationDropped bool   `json:"decorationDropped"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 1, resp.SkippedItems)
	assert.False(t, resp.DecorationDropped)

	require.Len(t, emu.Executed(), 1)
}

func TestPrintReceiptRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"malformed JSON", http.MethodPost, "{not json", http.StatusBadRequest},
		{"missing order number", http.MethodPost, `{"items":[]}`, http.StatusBadRequest},
	}

	srv := testServer(driver.NewEmulator())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/print-receipt", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.handlePrintReceipt(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPrintDepositEndpoint(t *testing.T) {
	emu := driver.NewEmulator()
	srv := testServer(emu)

	body := `{"orderNumber": "20240042", "items": [{"name": "Crate deposit", "price": "3.10"}], "total": "3.10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/print-deposit", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.handlePrintDeposit(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, emu.Executed(), 1)
}

func TestPrintBarcodeEndpoint(t *testing.T) {
	emu := driver.NewEmulator()
	srv := testServer(emu)

	req := httptest.NewRequest(http.MethodPost, "/api/print-barcode", strings.NewReader(`{"identifier": "42"}`))
	rec := httptest.NewRecorder()
	srv.handlePrintBarcode(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, emu.Executed(), 1)
}

func TestPrintBarcodeRejectsInvalidIdentifier(t *testing.T) {
	emu := driver.NewEmulator()
	srv := testServer(emu)

	req := httptest.NewRequest(http.MethodPost, "/api/print-barcode", strings.NewReader(`{"identifier": "no digits"}`))
	rec := httptest.NewRecorder()
	srv.handlePrintBarcode(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, emu.Executed())
}

func TestPrintReceiptMapsPrinterFault(t *testing.T) {
	emu := driver.NewEmulator()
	emu.FailWith(&driver.Fault{Kind: driver.FaultConnectionRefused, Detail: "dial tcp: refused"})
	srv := testServer(emu)

	body := `{"orderNumber": "1042", "items": [], "total": ""}`
	req := httptest.NewRequest(http.MethodPost, "/api/print-receipt", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.handlePrintReceipt(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(driver.NewEmulator())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.handleHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
