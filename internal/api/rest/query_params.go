package rest

import (
	"github.com/gin-gonic/gin"
)

// ListActionsQueryParams holds query parameters for GET /actions
type ListActionsQueryParams struct {
	Contract string `form:"contract"`
	Action   string `form:"action"`
	Since    int64  `form:"since,default=0"`
	Limit    int    `form:"limit,default=20"`
}

// ParseListActionsQuery parses query parameters for GET /actions
func ParseListActionsQuery(c *gin.Context) (*ListActionsQueryParams, error) {
	var params ListActionsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if params.Since < 0 {
		params.Since = 0
	}
	return &params, nil
}
