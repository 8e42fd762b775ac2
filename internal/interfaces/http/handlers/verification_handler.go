package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"veriflow.backend/internal/domain/entities"
	domainerrors "veriflow.backend/internal/domain/errors"
	"veriflow.backend/internal/domain/repositories"
	"veriflow.backend/internal/interfaces/http/middleware"
	"veriflow.backend/internal/interfaces/http/response"
	"veriflow.backend/internal/usecases"
)

// VerificationHandler handles code issuance and validation endpoints
type VerificationHandler struct {
	issuance   *usecases.IssuanceUsecase
	validation *usecases.ValidationUsecase
	accounts   repositories.AccountRepository
	limiter    *middleware.RateLimiter
}

// NewVerificationHandler creates a new verification handler. The limiter
// throttles issuance per recipient and may be nil to disable throttling.
func NewVerificationHandler(
	issuance *usecases.IssuanceUsecase,
	validation *usecases.ValidationUsecase,
	accounts repositories.AccountRepository,
	limiter *middleware.RateLimiter,
) *VerificationHandler {
	return &VerificationHandler{
		issuance:   issuance,
		validation: validation,
		accounts:   accounts,
		limiter:    limiter,
	}
}

func parseChannelParam(c *gin.Context) (entities.Channel, bool) {
	channel, ok := entities.ParseChannel(c.Param("channel"))
	if !ok {
		response.ErrorWithError(c, http.StatusNotFound, domainerrors.CodeNotFound, "Unknown verification channel")
		return "", false
	}
	return channel, true
}

// Issue handles code issuance
// POST /api/v1/verify/:channel/issue
func (h *VerificationHandler) Issue(c *gin.Context) {
	channel, ok := parseChannelParam(c)
	if !ok {
		return
	}

	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.ErrorWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Authentication required")
		return
	}

	var input entities.IssueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if h.limiter != nil {
		if recipient, ok := entities.NormalizeRecipient(channel, input.Recipient); ok {
			if !h.limiter.Allow(string(channel) + ":" + recipient) {
				response.ErrorWithError(c, http.StatusTooManyRequests, domainerrors.CodeBadRequest, "Too many codes requested. Please wait before retrying.")
				return
			}
		}
	}

	if err := h.issuance.Issue(c.Request.Context(), channel, input.Recipient, accountID); err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrInvalidRecipient):
			response.Error(c, domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeInvalidRecipient, "Invalid recipient for this channel", err))
		case errors.Is(err, domainerrors.ErrRecipientBound):
			response.Error(c, domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeRecipientBound, "This phone number is already verified by another account", err))
		case errors.Is(err, domainerrors.ErrTransport):
			response.Error(c, domainerrors.NewAppError(http.StatusBadGateway, domainerrors.CodeTransportError, "Could not deliver the code. Please try again.", err))
		case errors.Is(err, domainerrors.ErrStorage):
			response.Error(c, domainerrors.NewAppError(http.StatusInternalServerError, domainerrors.CodeStorageError, "Verification storage is unavailable", err))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{
		"message": "Verification code sent",
	})
}

// Validate handles code validation
// POST /api/v1/verify/:channel/validate
func (h *VerificationHandler) Validate(c *gin.Context) {
	channel, ok := parseChannelParam(c)
	if !ok {
		return
	}

	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.ErrorWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Authentication required")
		return
	}

	var input entities.ValidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.validation.Validate(c.Request.Context(), channel, input.Recipient, input.Code, accountID); err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrInvalidRecipient):
			response.Error(c, domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeInvalidRecipient, "Invalid recipient for this channel", err))
		case errors.Is(err, domainerrors.ErrNoActiveCode):
			response.Error(c, domainerrors.NewAppError(http.StatusNotFound, domainerrors.CodeNoActiveCode, "No OTP found. Please request a new code.", err))
		case errors.Is(err, domainerrors.ErrCodeExpired):
			response.Error(c, domainerrors.NewAppError(http.StatusGone, domainerrors.CodeExpired, "OTP has expired. Please request a new one.", err))
		case errors.Is(err, domainerrors.ErrCodeMismatch):
			response.Error(c, domainerrors.NewAppError(http.StatusUnprocessableEntity, domainerrors.CodeMismatch, "Invalid OTP. Please try again.", err))
		case errors.Is(err, domainerrors.ErrStorage):
			response.Error(c, domainerrors.NewAppError(http.StatusInternalServerError, domainerrors.CodeStorageError, "Verification storage is unavailable", err))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Verification successful",
	})
}

// Status reports the requesting account's verification progress
// GET /api/v1/verify/status
func (h *VerificationHandler) Status(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.ErrorWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Authentication required")
		return
	}

	account, err := h.accounts.GetByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Account not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"stage":         account.Stage,
		"emailVerified": account.EmailVerified,
		"phoneVerified": account.PhoneVerified,
	})
}
