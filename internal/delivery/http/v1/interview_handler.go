package v1

import (
	"net/http"
	"time"

	"go-interview-booking/internal/delivery/http/middleware"
	"go-interview-booking/internal/delivery/http/response"
	"go-interview-booking/internal/domain"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

func NewInterviewHandler(protected *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	interviews := protected.Group("/interviews")
	{
		interviews.GET("", handler.List)
		interviews.POST("", handler.Book)
		interviews.GET("/export", handler.Export)
		interviews.GET("/:id", handler.Get)
		interviews.PUT("/:id", handler.Update)
		interviews.DELETE("/:id", handler.Delete)
	}

	protected.GET("/companies/:id/interviews", handler.List)
	protected.POST("/companies/:id/interviews", handler.Book)
}

type BookInterviewRequest struct {
	Company       string    `json:"company"`
	Position      string    `json:"position"`
	InterviewDate time.Time `json:"interviewDate"`
}

// ListInterviews godoc
// @Summary      List interviews
// @Description  Users see their own interviews; admins see all of them, or those of one company
// @Tags         interviews
// @Produce      json
// @Param        id   path      string  false  "Company ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /interviews [get]
// @Router       /companies/{id}/interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) List(c *gin.Context) {
	interviews, err := h.interviewUC.ListInterviews(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessList(c, len(interviews), interviews)
}

// GetInterview godoc
// @Summary      Get an interview
// @Description  Owner or admin only
// @Tags         interviews
// @Produce      json
// @Param        id   path      string  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [get]
// @Security     BearerAuth
func (h *InterviewHandler) Get(c *gin.Context) {
	interview, err := h.interviewUC.GetInterview(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, interview)
}

// BookInterview godoc
// @Summary      Book an interview
// @Description  The date must fall inside the position's interview window. Users may hold at most the configured number of interviews.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id         path      string                false  "Company ID, overrides the body"
// @Param        interview  body      BookInterviewRequest  true   "Booking"
// @Success      201        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Failure      401        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /interviews [post]
// @Router       /companies/{id}/interviews [post]
// @Security     BearerAuth
func (h *InterviewHandler) Book(c *gin.Context) {
	var req BookInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	companyID := req.Company
	if id := c.Param("id"); id != "" {
		companyID = id
	}

	interview, err := h.interviewUC.Book(c.Request.Context(), middleware.PrincipalFrom(c), domain.BookingRequest{
		CompanyID:     companyID,
		PositionID:    req.Position,
		InterviewDate: req.InterviewDate,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, interview)
}

// UpdateInterview godoc
// @Summary      Reschedule an interview
// @Description  Owner or admin only. The new date must fall inside the position's window.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id         path      string                  true  "Interview ID"
// @Param        interview  body      domain.InterviewUpdate  true  "New position and/or date"
// @Success      200        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Failure      401        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /interviews/{id} [put]
// @Security     BearerAuth
func (h *InterviewHandler) Update(c *gin.Context) {
	var update domain.InterviewUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.Error(bindError(err))
		return
	}

	interview, err := h.interviewUC.UpdateInterview(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), &update)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, interview)
}

// DeleteInterview godoc
// @Summary      Cancel an interview
// @Description  Owner or admin only
// @Tags         interviews
// @Produce      json
// @Param        id   path      string  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [delete]
// @Security     BearerAuth
func (h *InterviewHandler) Delete(c *gin.Context) {
	if err := h.interviewUC.DeleteInterview(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ExportInterviews godoc
// @Summary      Export interviews to Excel
// @Description  Admin only. Optionally limited to one company.
// @Tags         interviews
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        company  query     string  false  "Company ID"
// @Success      200      {file}    binary
// @Failure      403      {object}  response.Response
// @Router       /interviews/export [get]
// @Security     BearerAuth
func (h *InterviewHandler) Export(c *gin.Context) {
	data, filename, err := h.interviewUC.ExportInterviews(c.Request.Context(), middleware.PrincipalFrom(c), c.Query("company"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
