package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetPathID returns the named path parameter, trimmed. label names the resource in errors.
func GetPathID(ctx *gin.Context, name, label string) (string, error) {
	id := strings.TrimSpace(ctx.Param(name))

	if id == "" {
		return "", errors.New(label + " ID not found")
	}

	return id, nil
}
