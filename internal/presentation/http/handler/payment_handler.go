package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/application/service"
	"github.com/sritek/scoops-fees/internal/domain/enum"
	"github.com/sritek/scoops-fees/internal/presentation/http/dto/request"
	"github.com/sritek/scoops-fees/internal/presentation/http/dto/response"
	"github.com/sritek/scoops-fees/internal/presentation/http/middleware"
	"github.com/sritek/scoops-fees/pkg/pagination"
)

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
	charWidth      int
}

// NewPaymentHandler creates a new payment handler. charWidth is the thermal
// printer character width used when a receipt is requested in ESC/POS form.
func NewPaymentHandler(paymentService *service.PaymentService, charWidth int) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, charWidth: charWidth}
}

// Record handles recording a payment against an installment
func (h *PaymentHandler) Record(c *gin.Context) {
	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		response.BadRequest(c, "Invalid payment date, expected YYYY-MM-DD")
		return
	}

	paymentMode, ok := enum.ParsePaymentMode(req.PaymentMode)
	if !ok {
		response.BadRequest(c, "Unknown payment mode")
		return
	}

	result, err := h.paymentService.Record(c.Request.Context(), &service.RecordPaymentInput{
		InstallmentID: req.InstallmentID,
		Amount:        req.Amount,
		PaymentDate:   paymentDate,
		PaymentMode:   paymentMode,
		TransactionID: req.TransactionID,
		RecordedBy:    GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", result)
}

// Receipt handles the receipt view for a recorded payment. The default is a
// JSON projection; ?format=escpos returns printer bytes for the counter.
func (h *PaymentHandler) Receipt(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	feeReceipt, err := h.paymentService.ReceiptForPayment(c.Request.Context(), paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("format") == "escpos" {
		c.Data(200, "application/octet-stream", feeReceipt.Render(h.charWidth))
		return
	}

	response.OK(c, "Receipt retrieved successfully", feeReceipt)
}

// StudentSummary handles the per-student fee summary for the current
// academic session
func (h *PaymentHandler) StudentSummary(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	sessionID := middleware.GetSessionID(c)

	summary, err := h.paymentService.StudentSummary(c.Request.Context(), studentID, sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee summary retrieved successfully", summary)
}

// BatchPending handles the outstanding installment view across a batch
func (h *PaymentHandler) BatchPending(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid batch ID")
		return
	}

	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	sessionID := middleware.GetSessionID(c)

	result, err := h.paymentService.BatchPendingInstallments(c.Request.Context(), batchID, sessionID, &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Pending installments retrieved successfully", result)
}
