package fiberlog

import (
	"time"

	authutils "office-admin-backend/lib/utils/auth-utils"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid       = "pid"
	TagLatency   = "latency"
	TagStatus    = "status"
	TagMethod    = "method"
	TagPath      = "path"
	TagIP        = "ip"
	TagBody      = "body"
	TagResBody   = "resBody"
	TagUserID    = "user_id"
	TagUserRole  = "user_role"
	RequestID    = "request_id"
	maxBodyBytes = 4096
)

// FuncTag значение поля лога для запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(_ *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagLatency: func(_ *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagStatus: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Response().StatusCode()
		},
		TagMethod: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Path()
		},
		TagIP: func(c *fiber.Ctx, _ *data) interface{} {
			return c.IP()
		},
		TagBody: func(c *fiber.Ctx, _ *data) interface{} {
			return truncate(c.Body())
		},
		TagResBody: func(c *fiber.Ctx, _ *data) interface{} {
			return truncate(c.Response().Body())
		},
		TagUserID: func(c *fiber.Ctx, _ *data) interface{} {
			if sub, ok := authutils.GetClaims(c)["sub"].(string); ok {
				return sub
			}
			return ""
		},
		TagUserRole: func(c *fiber.Ctx, _ *data) interface{} {
			if role, ok := authutils.GetClaims(c)["role"].(string); ok {
				return role
			}
			return ""
		},
		RequestID: func(c *fiber.Ctx, _ *data) interface{} {
			return c.GetRespHeader(fiber.HeaderXRequestID)
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

func truncate(body []byte) string {
	if len(body) > maxBodyBytes {
		return string(body[:maxBodyBytes]) + "..."
	}
	return string(body)
}
