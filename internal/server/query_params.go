package server

import (
	"github.com/aurumly/treasury/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

func parseIDQuery(c *gin.Context, name string) (snowflake.ID, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, newValidationError(name, "required", name+" is required")
	}
	id, err := snowflake.ParseString(raw)
	if err != nil || id == 0 {
		return 0, newValidationError(name, "invalid_"+name, name+" is invalid")
	}
	return id, nil
}

func parseIDParam(c *gin.Context, name string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(c.Param(name))
	if err != nil || id == 0 {
		return 0, newValidationError(name, "invalid_"+name, name+" is invalid")
	}
	return id, nil
}

func bindPagination(c *gin.Context) (pagination.Pagination, error) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		return pagination.Pagination{}, invalidRequestError()
	}
	return page, nil
}
