package v1

import (
	"net/http"

	"go-interview-booking/internal/delivery/http/middleware"
	"go-interview-booking/internal/delivery/http/response"
	"go-interview-booking/internal/domain"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
}

func NewCompanyHandler(public *gin.RouterGroup, protected *gin.RouterGroup, companyUC domain.CompanyUsecase) {
	handler := &CompanyHandler{companyUC: companyUC}

	publicCompanies := public.Group("/companies")
	{
		publicCompanies.GET("", handler.List)
		publicCompanies.GET("/tags", handler.Tags)
		publicCompanies.GET("/:id", handler.Get)
	}

	protectedCompanies := protected.Group("/companies")
	{
		protectedCompanies.POST("", handler.Create)
		protectedCompanies.PUT("/:id", handler.Update)
		protectedCompanies.DELETE("/:id", handler.Delete)
	}
}

// ListCompanies godoc
// @Summary      List companies
// @Description  All companies sorted by name
// @Tags         companies
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyUC.ListCompanies(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessList(c, len(companies), companies)
}

// GetCompany godoc
// @Summary      Get a company
// @Tags         companies
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /companies/{id} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companyUC.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, company)
}

// CreateCompany godoc
// @Summary      Create a company
// @Description  Admin only
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        company  body      domain.Company  true  "Company JSON"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /companies [post]
// @Security     BearerAuth
func (h *CompanyHandler) Create(c *gin.Context) {
	var company domain.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		c.Error(bindError(err))
		return
	}

	if err := h.companyUC.CreateCompany(c.Request.Context(), middleware.PrincipalFrom(c), &company); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, company)
}

// UpdateCompany godoc
// @Summary      Update a company
// @Description  Admin only. Fields left out of the body keep their value.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Company ID"
// @Param        company  body      domain.CompanyUpdate  true  "Fields to change"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /companies/{id} [put]
// @Security     BearerAuth
func (h *CompanyHandler) Update(c *gin.Context) {
	var update domain.CompanyUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.Error(bindError(err))
		return
	}

	company, err := h.companyUC.UpdateCompany(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), &update)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, company)
}

// DeleteCompany godoc
// @Summary      Delete a company
// @Description  Admin only. Refused while interviews reference the company; its positions are removed with it.
// @Tags         companies
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /companies/{id} [delete]
// @Security     BearerAuth
func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.companyUC.DeleteCompany(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ListTags godoc
// @Summary      List company tags
// @Description  Distinct tags across all companies, case-insensitive
// @Tags         companies
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /companies/tags [get]
func (h *CompanyHandler) Tags(c *gin.Context) {
	tags, err := h.companyUC.ListTags(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessList(c, len(tags), tags)
}
