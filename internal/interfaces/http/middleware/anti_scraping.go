package middleware

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/interfaces/http/response"
	"obra-connect.backend/pkg/logger"
	"obra-connect.backend/pkg/metrics"
)

// AntiScrapingMiddleware rejects user agents on the block list and logs
// referers that do not belong to an allowed origin. Requests without a
// user agent are rejected too.
func AntiScrapingMiddleware(blockedAgents, allowedOrigins []string, m *metrics.Metrics) gin.HandlerFunc {
	blocked := make([]string, 0, len(blockedAgents))
	for _, a := range blockedAgents {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			blocked = append(blocked, a)
		}
	}
	hosts := originHosts(allowedOrigins)

	return func(c *gin.Context) {
		ua := strings.ToLower(c.GetHeader("User-Agent"))
		if agent, hit := matchAgent(ua, blocked); hit {
			m.BlockedAgent()
			logger.Warn(c.Request.Context(), "Blocked user agent",
				zap.String("user_agent", c.GetHeader("User-Agent")),
				zap.String("match", agent),
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			response.Error(c, domainerrors.Forbidden("automated access is not allowed"))
			return
		}

		if ref := c.GetHeader("Referer"); ref != "" && len(hosts) > 0 {
			if u, err := url.Parse(ref); err != nil || !hosts[strings.ToLower(u.Host)] {
				logger.Warn(c.Request.Context(), "Unexpected referer",
					zap.String("referer", ref),
					zap.String("client_ip", c.ClientIP()),
					zap.String("path", c.Request.URL.Path),
				)
			}
		}
		c.Next()
	}
}

func matchAgent(ua string, blocked []string) (string, bool) {
	if strings.TrimSpace(ua) == "" {
		return "<empty>", true
	}
	for _, b := range blocked {
		if strings.Contains(ua, b) {
			return b, true
		}
	}
	return "", false
}

func originHosts(origins []string) map[string]bool {
	hosts := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			continue
		}
		if u, err := url.Parse(strings.TrimSpace(o)); err == nil && u.Host != "" {
			hosts[strings.ToLower(u.Host)] = true
		}
	}
	return hosts
}
