package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	helper "github.com/teja123git/Maze-Generator/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type mazeAPI struct {
	responder
	generationService GenerationService
	validator         *requestValidator
	log               *zap.Logger
}

func New(generationService GenerationService, log *zap.Logger) *mazeAPI {
	return &mazeAPI{
		responder:         responder{log: log},
		generationService: generationService,
		validator:         newRequestValidator(),
		log:               log,
	}
}

func (api *mazeAPI) Routes(group *helper.RouteGroup) {
	group.GET("/algorithms", api.algorithms)
	group.GET("/mazes", api.generateMaze)
}

// algorithms
//
//	@Summary		list the supported maze generation algorithms
//	@Tags			mazes
//	@Produce		json
//	@Success		200	{object}	algorithmsResponse
//	@Router			/algorithms [get]
func (api *mazeAPI) algorithms(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	headers := make(http.Header)
	if err := writeJSON(w, http.StatusOK, envelope{"data": algorithmsResponse{
		Algorithms: api.generationService.Algorithms(),
	}}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// generateMaze
//
//	@Summary		generate a complete maze without streaming
//	@Tags			mazes
//	@Produce		json
//	@Param			algorithm	query		string	false	"dfs, prims, kruskals, ellers or aldous_broder"
//	@Param			width		query		int		false	"odd width, at least 3"
//	@Param			height		query		int		false	"odd height, at least 3"
//	@Param			seed		query		int		false	"seed for a reproducible maze"
//	@Param			ascii		query		bool	false	"include an ascii rendering"
//	@Success		200			{object}	mazeResponse
//	@Failure		400			{object}	errorResponse
//	@Failure		500			{object}	errorResponse
//	@Router			/mazes [get]
func (api *mazeAPI) generateMaze(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request mazeRequest
		err     error
	)

	query := r.URL.Query()
	request.Algorithm = query.Get("algorithm")

	if v := query.Get("width"); v != "" {
		request.Width, err = strconv.Atoi(v)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("width must be a valid int"))
			return
		}
	}
	if v := query.Get("height"); v != "" {
		request.Height, err = strconv.Atoi(v)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("height must be a valid int"))
			return
		}
	}
	if v := query.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("seed must be a valid unsigned int"))
			return
		}
		request.Seed = &seed
	}
	withAscii, _ := strconv.ParseBool(query.Get("ascii"))

	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	maze, err := api.generationService.Generate(request.Algorithm, request.Width, request.Height, request.Seed)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := writeJSON(w, http.StatusOK, envelope{"data": NewMazeResponse(maze, withAscii)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
