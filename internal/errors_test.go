package internal_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-management/internal"
)

var _ = Describe("AppError", func() {
	It("hides internal causes from clients", func() {
		err := internal.NewInternalError("failed to insert row", errors.New("pq: password authentication failed"))

		status, body := err.ToHTTPResponse()

		Expect(status).To(Equal(http.StatusInternalServerError))
		raw, marshalErr := json.Marshal(body)
		Expect(marshalErr).NotTo(HaveOccurred())
		Expect(string(raw)).NotTo(ContainSubstring("password"))
		Expect(string(raw)).NotTo(ContainSubstring("insert"))
		Expect(string(raw)).To(ContainSubstring(`"code":"INTERNAL_ERROR"`))
	})

	It("renders domain errors with their status and code", func() {
		status, body := internal.ErrAlreadyClockedIn.ToHTTPResponse()

		Expect(status).To(Equal(http.StatusConflict))
		resp, ok := body.(internal.Response)
		Expect(ok).To(BeTrue())
		Expect(resp.Error.Code).To(Equal(internal.ErrCodeAlreadyClockedIn))
	})

	It("matches sentinels through wrapping and copies", func() {
		wrapped := fmt.Errorf("clock in: %w", internal.ErrNoOpenSession.WithCause(errors.New("no rows")))

		Expect(errors.Is(wrapped, internal.ErrNoOpenSession)).To(BeTrue())
		Expect(errors.Is(wrapped, internal.ErrAlreadyClockedIn)).To(BeFalse())

		appErr, ok := internal.IsAppError(wrapped)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusNotFound))
		Expect(internal.ErrNoOpenSession.Cause).To(BeNil())
	})

	It("joins field messages in the detailed message", func() {
		err := internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{
				{Field: "type", Message: "type is required"},
				{Field: "reason", Message: "reason is required"},
			}})

		Expect(err.Error()).To(Equal("type is required"))
		Expect(err.GetDetailedMessage()).To(Equal("type is required; reason is required"))
	})
})

var _ = Describe("Principal", func() {
	It("parses roles case-insensitively", func() {
		role, err := internal.ParseRole(" admin ")
		Expect(err).NotTo(HaveOccurred())
		Expect(role).To(Equal(internal.RoleAdmin))

		_, err = internal.ParseRole("manager")
		Expect(err).To(MatchError(internal.ErrInvalidRole))
	})

	It("round-trips through a context", func() {
		p := internal.Principal{UserID: "emp-1", Role: internal.RoleEmployee}
		ctx := internal.ContextWithPrincipal(context.Background(), p)

		got, ok := internal.PrincipalFromContext(ctx)
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(p))
		Expect(got.RequireAdmin()).To(MatchError(internal.ErrAdminOnly))

		_, ok = internal.PrincipalFromContext(context.Background())
		Expect(ok).To(BeFalse())
	})
})
