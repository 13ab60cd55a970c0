package middleware

import (
	"context"
	"net/http"
	"strings"

	"concierge-backend/internal/cache"
	"concierge-backend/internal/identity"
	"concierge-backend/internal/services"
)

type contextKey string

const CompanyIDKey contextKey = "company_id"
const EmailKey contextKey = "email"

type AuthMiddleware struct {
	jwtManager *identity.JWTManager
	companies  *services.CompanyService
}

func NewAuthMiddleware(jwtManager *identity.JWTManager, companies *services.CompanyService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		companies:  companies,
	}
}

// Authenticate validates the bearer token and resolves the staff member's
// company. Every request downstream is scoped to that company.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		companyID, err := m.resolveCompany(r.Context(), claims.Email)
		if err != nil {
			http.Error(w, "Failed to resolve company", http.StatusInternalServerError)
			return
		}
		if companyID == "" {
			http.Error(w, "No company found for this account", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), CompanyIDKey, companyID)
		ctx = context.WithValue(ctx, EmailKey, claims.Email)

		// The access log middleware wraps the writer before auth runs;
		// hand it the identity it cannot see on its own request copy.
		if rec, ok := w.(authEmailRecorder); ok {
			rec.SetAuthEmail(claims.Email)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveCompany maps a staff email to its company, checking the cache
// before the document store. Membership changes propagate within the
// cache TTL.
func (m *AuthMiddleware) resolveCompany(ctx context.Context, email string) (string, error) {
	if companyID, ok := cache.GetCachedCompanyID(ctx, email); ok {
		return companyID, nil
	}

	company, err := m.companies.GetCompanyByStaffEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if company == nil {
		return "", nil
	}

	cache.CacheCompanyID(ctx, email, company.ID)
	return company.ID, nil
}

// GetCompanyIDFromContext extracts the company scope from request context.
func GetCompanyIDFromContext(ctx context.Context) (string, bool) {
	companyID, ok := ctx.Value(CompanyIDKey).(string)
	return companyID, ok
}

// GetEmailFromContext extracts the staff email from request context.
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}
