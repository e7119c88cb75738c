package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edunova/colegio/core/publication"
	"github.com/edunova/colegio/core/user"
)

type publicationApi struct {
	svc    publication.Service
	usrSvc user.Service
}

func registerPublicationAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc publication.Service, usrSvc user.Service) {
	api := publicationApi{svc: svc, usrSvc: usrSvc}

	pg := g.Group("/publications", jwt)
	pg.GET("", api.query)
	pg.POST("", api.create, staffMiddleware())
	pg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *publicationApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	pubs, err := api.svc.VisibleTo(usr)
	if err != nil {
		return errors.Wrap(err, "querying publications")
	}
	if pubs == nil {
		pubs = []publication.Publication{}
	}
	return ctx.JSON(http.StatusOK, pubs)
}

func (api *publicationApi) create(ctx echo.Context) error {
	var data publication.NewPublication
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPublication")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	pub, err := api.svc.Create(usr, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, pub)
}

func (api *publicationApi) destroy(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err = api.svc.Delete(ctx.Param("id"), usr); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
