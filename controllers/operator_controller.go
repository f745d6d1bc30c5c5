package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"totalhub-web/middleware"
	"totalhub-web/models"
	"totalhub-web/services"
	"totalhub-web/utils"
)

type OperatorController struct {
	Backend *services.BackendClient
}

func NewOperatorController(backend *services.BackendClient) *OperatorController {
	return &OperatorController{Backend: backend}
}

func (oc *OperatorController) List(c *gin.Context) {
	operators, err := oc.Backend.ListOperators(c.Request.Context(), middleware.TokenFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, operators)
}

func (oc *OperatorController) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	operator, err := oc.Backend.GetOperator(c.Request.Context(), middleware.TokenFromContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, operator)
}

func (oc *OperatorController) Create(c *gin.Context) {
	var operator models.Operator
	if err := c.ShouldBindJSON(&operator); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	operator.Name = strings.TrimSpace(operator.Name)
	operator.Email = strings.TrimSpace(operator.Email)
	if operator.Name == "" || operator.Email == "" {
		utils.JSONError(c, http.StatusBadRequest, "name and email are required")
		return
	}

	created, err := oc.Backend.CreateOperator(c.Request.Context(), middleware.TokenFromContext(c), operator)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (oc *OperatorController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	delete(patch, "id")

	operator, err := oc.Backend.UpdateOperator(c.Request.Context(), middleware.TokenFromContext(c), id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, operator)
}

func (oc *OperatorController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := oc.Backend.DeleteOperator(c.Request.Context(), middleware.TokenFromContext(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
