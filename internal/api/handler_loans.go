package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lasalleserve-backend/internal/domain"
	"lasalleserve-backend/internal/model"
	"lasalleserve-backend/internal/store"
)

type submitLoanRequest struct {
	RoomID     *string `json:"roomId"`
	Facilities []struct {
		AssetID  string `json:"assetId"`
		Quantity int    `json:"quantity"`
	} `json:"facilities"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Purpose   string `json:"purpose"`
}

// loanResponse is a loan plus its read-time overdue flag.
type loanResponse struct {
	*model.Loan
	Overdue bool `json:"overdue"`
}

func newLoanResponse(loan *model.Loan, now time.Time) loanResponse {
	return loanResponse{Loan: loan, Overdue: store.Overdue(loan, now)}
}

// SubmitLoan handles POST /api/loans.
func (h *Handler) SubmitLoan(c *gin.Context) {
	borrower, ok := caller(c)
	if !ok {
		return
	}
	var req submitLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid startDate, expected YYYY-MM-DD"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid endDate, expected YYYY-MM-DD"})
		return
	}

	sub := store.SubmitLoanRequest{
		RoomID:    req.RoomID,
		StartDate: start,
		EndDate:   end,
		Purpose:   req.Purpose,
	}
	for _, f := range req.Facilities {
		sub.Facilities = append(sub.Facilities, store.FacilityRequest{AssetID: f.AssetID, Quantity: f.Quantity})
	}

	loan, err := h.store.SubmitLoan(c.Request.Context(), borrower, sub)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newLoanResponse(loan, time.Now()))
}

// ListLoans handles GET /api/loans. Requester-class callers only see
// their own loans regardless of the borrower_id parameter.
func (h *Handler) ListLoans(c *gin.Context) {
	actor, ok := caller(c)
	if !ok {
		return
	}

	f := store.LoanFilter{
		BorrowerID:  c.Query("borrower_id"),
		Status:      domain.LoanStatus(c.Query("status")),
		Search:      c.Query("search"),
		ReturnState: store.ReturnState(c.Query("return_state")),
		SortKey:     c.Query("sort"),
	}
	if !domain.CanViewAllLoans(actor.Role) {
		f.BorrowerID = actor.UserID
	}
	if v := c.Query("from"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
			return
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
			return
		}
		f.To = &t
	}

	loans, err := h.store.ListLoans(c.Request.Context(), f)
	if err != nil {
		abortWithError(c, err)
		return
	}

	now := time.Now()
	out := make([]loanResponse, 0, len(loans))
	for i := range loans {
		out = append(out, newLoanResponse(&loans[i], now))
	}
	c.JSON(http.StatusOK, out)
}

// GetLoan handles GET /api/loans/:id.
func (h *Handler) GetLoan(c *gin.Context) {
	actor, ok := caller(c)
	if !ok {
		return
	}
	loan, err := h.store.GetLoan(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !domain.CanViewAllLoans(actor.Role) && loan.BorrowerID != actor.UserID {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	c.JSON(http.StatusOK, newLoanResponse(loan, time.Now()))
}

// ApproveLoan handles POST /api/loans/:id/approve.
func (h *Handler) ApproveLoan(c *gin.Context) {
	approver, ok := caller(c)
	if !ok {
		return
	}
	loan, err := h.store.ApproveLoan(c.Request.Context(), c.Param("id"), approver)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newLoanResponse(loan, time.Now()))
}

// RejectLoan handles POST /api/loans/:id/reject.
func (h *Handler) RejectLoan(c *gin.Context) {
	approver, ok := caller(c)
	if !ok {
		return
	}
	loan, err := h.store.RejectLoan(c.Request.Context(), c.Param("id"), approver)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newLoanResponse(loan, time.Now()))
}
