package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appbooking "github.com/smbc/backend/internal/application/booking"
)

// Bookings manages catering bookings and their payments
type Bookings interface {
	Create(ctx context.Context, req appbooking.CreateBookingRequest) (*appbooking.BookingResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*appbooking.BookingResponse, error)
	List(ctx context.Context, filter appbooking.BookingListFilter) ([]appbooking.BookingResponse, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, req appbooking.ChangeStatusRequest) (*appbooking.BookingResponse, error)
	AddPayment(ctx context.Context, actor uuid.UUID, id uuid.UUID, req appbooking.AddPaymentRequest) (*appbooking.AddPaymentResponse, error)
	ListPayments(ctx context.Context, id uuid.UUID) ([]appbooking.PaymentResponse, error)
	PaymentsTotal(ctx context.Context, id uuid.UUID) (*appbooking.PaymentsTotalResponse, error)
}

// BookingHandler serves the catering booking endpoints
type BookingHandler struct {
	BaseHandler
	bookings Bookings
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookings Bookings) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create godoc
// @ID           createBooking
// @Summary      Create a catering booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body appbooking.CreateBookingRequest true "Booking"
// @Success      201 {object} APIResponse[appbooking.BookingResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /catering/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req appbooking.CreateBookingRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.bookings.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get godoc
// @ID           getBooking
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Param        id path string true "Booking ID" format(uuid)
// @Success      200 {object} APIResponse[appbooking.BookingResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catering/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.bookings.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listBookings
// @Summary      List bookings, optionally by status
// @Tags         bookings
// @Produce      json
// @Param        status query string false "Pending, Confirmed, Completed or Cancelled"
// @Success      200 {object} APIResponse[[]appbooking.BookingResponse]
// @Router       /catering/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	var filter appbooking.BookingListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	rows, err := h.bookings.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, rows, len(rows))
}

// ChangeStatus godoc
// @ID           changeBookingStatus
// @Summary      Confirm or cancel a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id path string true "Booking ID" format(uuid)
// @Param        request body appbooking.ChangeStatusRequest true "Target status"
// @Success      200 {object} APIResponse[appbooking.BookingResponse]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /catering/bookings/{id}/status [put]
func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appbooking.ChangeStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.bookings.ChangeStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddPayment godoc
// @ID           addBookingPayment
// @Summary      Record a payment against a booking
// @Description  Computes the running balance; a settling payment completes the booking in the same transaction
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id path string true "Booking ID" format(uuid)
// @Param        Idempotency-Key header string false "Client supplied key for safe retries"
// @Param        request body appbooking.AddPaymentRequest true "Payment"
// @Success      201 {object} APIResponse[appbooking.AddPaymentResponse]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /catering/bookings/{id}/payments [post]
func (h *BookingHandler) AddPayment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appbooking.AddPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	resp, err := h.bookings.AddPayment(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListPayments godoc
// @ID           listBookingPayments
// @Summary      List a booking's payments
// @Tags         bookings
// @Router       /catering/bookings/{id}/payments [get]
func (h *BookingHandler) ListPayments(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	rows, err := h.bookings.ListPayments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, rows, len(rows))
}

// PaymentsTotal godoc
// @ID           getBookingPaymentsTotal
// @Summary      Sum of a booking's payments
// @Tags         bookings
// @Router       /catering/bookings/{id}/payments/total [get]
func (h *BookingHandler) PaymentsTotal(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.bookings.PaymentsTotal(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
