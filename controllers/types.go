package controllers

import (
	"strconv"

	"github.com/community-board/api-go/apperrors"
	"github.com/gin-gonic/gin"
)

type StandardResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorResponse struct {
	ErrorCode string            `json:"errorCode"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}

const codeInvalidParameter = "INVALID_PARAMETER"

// idParam reads a positive numeric path parameter.
func idParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation(codeInvalidParameter, name+" must be a positive integer")
	}
	return uint(id), nil
}

// pageQuery reads the optional cursor and size query parameters. A missing
// size is returned as 0 and replaced by the default page size downstream.
func pageQuery(c *gin.Context) (*uint, int, error) {
	var cursor *uint
	if raw := c.Query("cursor"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, 0, apperrors.Validation(codeInvalidParameter, "cursor must be a positive integer")
		}
		id := uint(v)
		cursor = &id
	}

	size := 0
	if raw := c.Query("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return nil, 0, apperrors.Validation(codeInvalidParameter, "size must be a non-negative integer")
		}
		size = v
	}
	return cursor, size, nil
}
