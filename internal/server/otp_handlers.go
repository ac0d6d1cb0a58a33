package server

import (
	"context"
	"fmt"
	"log/slog"

	"paperplane/internal/middleware"
	"paperplane/internal/models"
	"paperplane/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SendOTP handles POST /send-otp
// @Summary Send a one-time passcode
// @Description Generate a 6-digit code and email it to the given address
// @Tags otp
// @Accept json
// @Produce json
// @Param request body object{email=string} true "Recipient address"
// @Success 200 {object} object{sent=bool}
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} object{sent=bool}
// @Router /send-otp [post]
func (s *Server) SendOTP(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	code, err := s.otp.Generate()
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "OTP generation failed",
			slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"sent": false})
	}

	// Record which address the code was issued to so verification can
	// check the pairing. Best-effort: verification by code alone still
	// works without it.
	if err := s.otp.Bind(c.Context(), req.Email, code); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "OTP binding failed",
			slog.String("error", err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.config.MailTimeout)
	defer cancel()

	body := fmt.Sprintf("Your verification code is %s. It expires in about a minute.", code)
	if err := s.mailer.Send(ctx, req.Email, "Your verification code", body); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "OTP email delivery failed",
			slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"sent": false})
	}

	return c.JSON(fiber.Map{"sent": true})
}

// VerifyOTP handles POST /verify-otp
// @Summary Verify a one-time passcode
// @Description Check a 6-digit code against the current time window. When an
// email is supplied the code must also be the one issued to that address.
// @Tags otp
// @Accept json
// @Produce json
// @Param request body object{otp=string,email=string} true "Code to verify"
// @Success 200 {object} object{verification=bool}
// @Failure 400 {object} models.ErrorResponse
// @Router /verify-otp [post]
func (s *Server) VerifyOTP(c *fiber.Ctx) error {
	var req struct {
		OTP   string `json:"otp"`
		Code  string `json:"code"`
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// The documented field is "otp"; "code" is accepted as a fallback.
	code := req.OTP
	if code == "" {
		code = req.Code
	}
	if code == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Code is required"))
	}

	if req.Email != "" && s.redis != nil {
		ok, err := s.otp.ValidateFor(c.Context(), req.Email, code)
		if err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "OTP recipient check failed",
				slog.String("error", err.Error()))
			ok = false
		}
		return c.JSON(fiber.Map{"verification": ok})
	}

	return c.JSON(fiber.Map{"verification": s.otp.Validate(code)})
}
