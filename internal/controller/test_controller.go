package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/quickgrade/quickgrade/internal/apperr"
	"github.com/quickgrade/quickgrade/internal/dto"
	"github.com/quickgrade/quickgrade/internal/middleware"
	"github.com/quickgrade/quickgrade/internal/service"
)

type TestController struct {
	testSvc service.TestService
}

func NewTestController(testSvc service.TestService) *TestController {
	return &TestController{testSvc: testSvc}
}

// Create godoc
// @Summary Create a new test
// @Description Creates a draft test owned by the caller, seeded with one demo question. Title and description are optional.
// @Tags tests
// @Accept json
// @Produce json
// @Param test body dto.CreateTestRequest false "Optional title and description"
// @Success 201 {object} dto.CreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /tests [post]
func (ctrl *TestController) Create(c *gin.Context) {
	var req dto.CreateTestRequest
	// An absent body is valid here, both fields have defaults.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Warn().Err(err).Msg("Create test: failed to bind request")
		respondError(c, apperr.Validation(validationDetails(err)))
		return
	}

	created, err := ctrl.testSvc.Create(middleware.CurrentIdentity(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get godoc
// @Summary Get a test
// @Description Returns a test owned by the caller. Unowned tests answer 404, ADMIN reads any.
// @Tags tests
// @Produce json
// @Param id path string true "Test ID"
// @Success 200 {object} dto.TestResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Missing or not owned"
// @Router /tests/{id} [get]
func (ctrl *TestController) Get(c *gin.Context) {
	test, err := ctrl.testSvc.Get(middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, test)
}

// GetQuestions godoc
// @Summary List a test's questions
// @Description Returns the questions of an owned test, ordered by questionIndex ascending.
// @Tags tests
// @Produce json
// @Param id path string true "Test ID"
// @Success 200 {array} dto.QuestionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Missing or not owned"
// @Router /tests/{id}/questions [get]
func (ctrl *TestController) GetQuestions(c *gin.Context) {
	questions, err := ctrl.testSvc.GetQuestions(middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}
