package controller

import (
	"context"
	"net/url"
	"strings"

	"workpackage-be/internal/dto"
	"workpackage-be/internal/pkg/apperror"
	"workpackage-be/internal/pkg/logger"
	"workpackage-be/internal/pkg/serverutils"
	"workpackage-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ErrorNotifier surfaces failed requests on the notification channel.
type ErrorNotifier interface {
	HandleErrorResponse(ctx context.Context, err error, userID *uuid.UUID, redirectTo string)
}

type IWorkPackageCreateController interface {
	RegisterRoutes(r fiber.Router)
	New(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	StopEditing(ctx *fiber.Ctx) error
	Commit(ctx *fiber.Ctx) error
}

type workPackageCreateController struct {
	service       service.IWorkPackageCreateService
	rootService   service.IRootService
	notifier      ErrorNotifier
	jwtSecret     string
	loginPath     string
	secureCookies bool
	logger        logger.ILogger
}

func NewWorkPackageCreateController(
	service service.IWorkPackageCreateService,
	rootService service.IRootService,
	notifier ErrorNotifier,
	jwtSecret string,
	loginPath string,
	secureCookies bool,
	log logger.ILogger,
) IWorkPackageCreateController {
	return &workPackageCreateController{
		service:       service,
		rootService:   rootService,
		notifier:      notifier,
		jwtSecret:     jwtSecret,
		loginPath:     loginPath,
		secureCookies: secureCookies,
		logger:        log,
	}
}

func (c *workPackageCreateController) RegisterRoutes(r fiber.Router) {
	auth := serverutils.OptionalJwtMiddleware(c.jwtSecret)
	session := serverutils.DraftSessionMiddleware(c.secureCookies)

	h := r.Group("/work_packages/new", auth, session)
	h.Get("", c.New)
	h.Patch("", c.Update)
	h.Delete("", c.StopEditing)
	h.Post("/commit", c.Commit)

	r.Get("/projects/:project/work_packages/new", auth, session, c.New)
}

func (c *workPackageCreateController) New(ctx *fiber.Ctx) error {
	var req dto.NewWorkPackageRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.InvalidQuery(err)
	}
	if project := ctx.Params("project"); project != "" {
		req.ProjectPath = project
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return apperror.InvalidQuery(err)
	}

	res, err := c.service.New(ctx.UserContext(), serverutils.DraftScope(ctx), &req)
	if err != nil {
		return c.handleError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve work package draft", res))
}

func (c *workPackageCreateController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidRequestBody(err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return apperror.InvalidRequestBody(err)
	}

	res, err := c.service.Update(ctx.UserContext(), serverutils.DraftScope(ctx), &req)
	if err != nil {
		return c.handleError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update work package draft", res))
}

func (c *workPackageCreateController) StopEditing(ctx *fiber.Ctx) error {
	if err := c.service.StopEditing(ctx.UserContext(), serverutils.DraftScope(ctx)); err != nil {
		return c.handleError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success discard work package draft", nil))
}

func (c *workPackageCreateController) Commit(ctx *fiber.Ctx) error {
	res, err := c.service.Commit(ctx.UserContext(), serverutils.DraftScope(ctx))
	if err != nil {
		return c.handleError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create work package", res))
}

// handleError deals with missing permissions: anonymous callers are sent to
// the login page with a way back, and the failure is always shown to the
// user. Everything else goes to the default error handler.
func (c *workPackageCreateController) handleError(ctx *fiber.Ctx, err error) error {
	if !apperror.Is(err, apperror.IdentifierMissingPermission) {
		return err
	}

	root, rootErr := c.rootService.Load(ctx.UserContext())
	if rootErr != nil {
		c.logger.Error("WorkPackageCreate", "Failed to load user context", map[string]interface{}{"error": rootErr.Error()})
		c.notifier.HandleErrorResponse(ctx.UserContext(), err, nil, "")
		return err
	}

	if root.User != nil {
		c.notifier.HandleErrorResponse(ctx.UserContext(), err, &root.User.Id, "")
		return err
	}

	redirectTo := c.loginRedirect(backURL(ctx))
	c.notifier.HandleErrorResponse(ctx.UserContext(), err, nil, redirectTo)

	body := serverutils.NewErrorResponse(apperror.IdentifierOf(err), err.Error())
	body.RedirectTo = redirectTo
	ctx.Set(fiber.HeaderLocation, redirectTo)
	return ctx.Status(fiber.StatusUnauthorized).JSON(body)
}

// backURL is where the login page sends the user back to. Only the create
// screen can be opened again, so edits and commits point at it.
func backURL(ctx *fiber.Ctx) string {
	if ctx.Method() == fiber.MethodGet {
		return ctx.OriginalURL()
	}
	return strings.TrimSuffix(ctx.Path(), "/commit")
}

func (c *workPackageCreateController) loginRedirect(backURL string) string {
	query := url.Values{}
	query.Set("back_url", backURL)
	return c.loginPath + "?" + query.Encode()
}
