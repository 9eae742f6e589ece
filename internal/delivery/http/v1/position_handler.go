package v1

import (
	"net/http"

	"go-interview-booking/internal/delivery/http/middleware"
	"go-interview-booking/internal/delivery/http/response"
	"go-interview-booking/internal/domain"

	"github.com/gin-gonic/gin"
)

type PositionHandler struct {
	positionUC domain.PositionUsecase
}

func NewPositionHandler(public *gin.RouterGroup, protected *gin.RouterGroup, positionUC domain.PositionUsecase) {
	handler := &PositionHandler{positionUC: positionUC}

	publicPositions := public.Group("/positions")
	{
		publicPositions.GET("", handler.List)
		publicPositions.GET("/skills", handler.Skills)
		publicPositions.GET("/:id", handler.Get)
	}
	public.GET("/companies/:id/positions", handler.List)

	protectedPositions := protected.Group("/positions")
	{
		protectedPositions.PUT("/:id", handler.Update)
		protectedPositions.DELETE("/:id", handler.Delete)
	}
	protected.POST("/companies/:id/positions", handler.Create)
}

// ListPositions godoc
// @Summary      List positions
// @Description  All positions sorted by title, or the positions of one company
// @Tags         positions
// @Produce      json
// @Param        id   path      string  false  "Company ID"
// @Success      200  {object}  response.Response
// @Router       /positions [get]
// @Router       /companies/{id}/positions [get]
func (h *PositionHandler) List(c *gin.Context) {
	positions, err := h.positionUC.ListPositions(c.Request.Context(), domain.PositionFilter{CompanyID: c.Param("id")})
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessList(c, len(positions), positions)
}

// GetPosition godoc
// @Summary      Get a position
// @Tags         positions
// @Produce      json
// @Param        id   path      string  true  "Position ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /positions/{id} [get]
func (h *PositionHandler) Get(c *gin.Context) {
	position, err := h.positionUC.GetPosition(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, position)
}

// CreatePosition godoc
// @Summary      Add a position to a company
// @Description  Admin only
// @Tags         positions
// @Accept       json
// @Produce      json
// @Param        id        path      string           true  "Company ID"
// @Param        position  body      domain.Position  true  "Position JSON"
// @Success      201       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /companies/{id}/positions [post]
// @Security     BearerAuth
func (h *PositionHandler) Create(c *gin.Context) {
	var position domain.Position
	if err := c.ShouldBindJSON(&position); err != nil {
		c.Error(bindError(err))
		return
	}

	if err := h.positionUC.CreatePosition(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), &position); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, position)
}

// UpdatePosition godoc
// @Summary      Update a position
// @Description  Admin only. The owning company cannot change.
// @Tags         positions
// @Accept       json
// @Produce      json
// @Param        id        path      string                 true  "Position ID"
// @Param        position  body      domain.PositionUpdate  true  "Fields to change"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /positions/{id} [put]
// @Security     BearerAuth
func (h *PositionHandler) Update(c *gin.Context) {
	var update domain.PositionUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.Error(bindError(err))
		return
	}

	position, err := h.positionUC.UpdatePosition(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), &update)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, position)
}

// DeletePosition godoc
// @Summary      Delete a position
// @Description  Admin only. Refused while interviews reference the position.
// @Tags         positions
// @Produce      json
// @Param        id   path      string  true  "Position ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /positions/{id} [delete]
// @Security     BearerAuth
func (h *PositionHandler) Delete(c *gin.Context) {
	if err := h.positionUC.DeletePosition(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ListSkills godoc
// @Summary      List position skills
// @Description  Distinct skills across all positions, case-insensitive
// @Tags         positions
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /positions/skills [get]
func (h *PositionHandler) Skills(c *gin.Context) {
	skills, err := h.positionUC.ListSkills(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessList(c, len(skills), skills)
}
