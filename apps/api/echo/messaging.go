package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edunova/colegio/core"
	"github.com/edunova/colegio/core/messaging"
	"github.com/edunova/colegio/core/user"
)

type messagingApi struct {
	svc    messaging.Service
	usrSvc user.Service
}

func registerMessagingAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc messaging.Service, usrSvc user.Service) {
	api := messagingApi{svc: svc, usrSvc: usrSvc}

	mg := g.Group("/messages", jwt)
	mg.GET("", api.query)
	mg.GET("/unread-count", api.unreadCount)
	mg.POST("", api.compose)
	mg.POST("/drafts", api.saveDraft)

	dg := mg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.POST("/send", api.sendDraft)
	dg.POST("/read", api.markRead)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *messagingApi) query(ctx echo.Context) error {
	folder := messaging.Folder(ctx.QueryParam("folder"))
	if folder == "" {
		folder = messaging.FolderReceived
	}
	if !folder.Valid() {
		return core.NewValidationError(
			errors.New("unknown folder"),
			core.FieldError{Field: "folder", Error: "unknown folder"},
		)
	}

	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	msgs, err := api.svc.Folder(folder, usr)
	if err != nil {
		return errors.Wrap(err, "querying messages")
	}
	if msgs == nil {
		msgs = []messaging.Message{}
	}
	return ctx.JSON(http.StatusOK, msgs)
}

func (api *messagingApi) unreadCount(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	count, err := api.svc.UnreadCountFor(usr)
	if err != nil {
		return errors.Wrap(err, "counting unread messages")
	}
	return ctx.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}

func (api *messagingApi) compose(ctx echo.Context) error {
	var data messaging.NewMessage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMessage")
	}

	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	msg, err := api.svc.Compose(usr, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, msg)
}

func (api *messagingApi) saveDraft(ctx echo.Context) error {
	var data messaging.NewMessage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMessage")
	}

	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	msg, err := api.svc.SaveDraft(usr, data)
	if err != nil {
		return errors.Wrap(err, "saving draft")
	}
	return ctx.JSON(http.StatusCreated, msg)
}

func (api *messagingApi) retrieve(ctx echo.Context) error {
	msg, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding message by ID")
	}
	return ctx.JSON(http.StatusOK, msg)
}

func (api *messagingApi) sendDraft(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	msg, err := api.svc.SendDraft(ctx.Param("id"), usr)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, msg)
}

func (api *messagingApi) markRead(ctx echo.Context) error {
	msg, err := api.svc.MarkRead(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "marking message read")
	}
	return ctx.JSON(http.StatusOK, msg)
}

func (api *messagingApi) destroy(ctx echo.Context) error {
	msg, err := api.svc.MoveToTrash(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "trashing message")
	}
	return ctx.JSON(http.StatusOK, msg)
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
