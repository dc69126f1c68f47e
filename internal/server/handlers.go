package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/temirov/supacode-demo/internal/listings"
	"github.com/temirov/supacode-demo/internal/simulator"
)

// statusClientClosedRequest is reported when the caller goes away before the call resolves.
const statusClientClosedRequest = 499

type OperationView struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type SubmitRequest struct {
	SourceText string `json:"source_text"`
}

type SubmitResponse struct {
	ID         string `json:"id"`
	Operation  string `json:"operation"`
	State      string `json:"state"`
	Configured bool   `json:"configured"`
	ResultText string `json:"result_text"`
}

type EndpointView struct {
	EdgeFunctionURL string `json:"edge_function_url"`
	Configured      bool   `json:"configured"`
}

type EndpointUpdate struct {
	URL *string `json:"url" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (server *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (server *Server) listOperations(c *gin.Context) {
	operations := simulator.Operations()
	views := make([]OperationView, 0, len(operations))
	for _, operation := range operations {
		views = append(views, OperationView{Name: operation.String(), Label: operation.Label()})
	}
	c.JSON(http.StatusOK, views)
}

func (server *Server) submitOperation(c *gin.Context) {
	operation, parseErr := simulator.ParseOperation(c.Param("name"))
	if parseErr != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: parseErr.Error()})
		return
	}

	var request SubmitRequest
	if bindErr := c.ShouldBindJSON(&request); bindErr != nil && !errors.Is(bindErr, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + bindErr.Error()})
		return
	}

	endpoint := server.settings.EdgeFunctionURL()
	demo := simulator.New(endpoint, simulator.WithDelay(server.delay), simulator.WithLogger(server.logger))
	call, startErr := demo.Start(c.Request.Context(), simulator.Request{SourceText: request.SourceText, Operation: operation})
	if startErr != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: startErr.Error()})
		return
	}

	response, waitErr := call.Wait()
	if waitErr != nil {
		server.logger.Info("demo call abandoned by client", zap.String("call_id", call.ID), zap.Error(waitErr))
		c.AbortWithStatus(statusClientClosedRequest)
		return
	}

	c.JSON(http.StatusOK, SubmitResponse{
		ID:         call.ID,
		Operation:  operation.String(),
		State:      call.State().String(),
		Configured: demo.Configured(),
		ResultText: response.ResultText,
	})
}

func (server *Server) getEndpoint(c *gin.Context) {
	c.JSON(http.StatusOK, server.endpointView())
}

func (server *Server) putEndpoint(c *gin.Context) {
	var update EndpointUpdate
	if bindErr := c.ShouldBindJSON(&update); bindErr != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + bindErr.Error()})
		return
	}
	if setErr := server.settings.SetEdgeFunctionURL(*update.URL); setErr != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: setErr.Error()})
		return
	}
	server.logger.Info("edge function URL updated", zap.Bool("configured", *update.URL != ""))
	c.JSON(http.StatusOK, server.endpointView())
}

func (server *Server) endpointView() EndpointView {
	endpoint := server.settings.EdgeFunctionURL()
	return EndpointView{EdgeFunctionURL: endpoint, Configured: endpoint != ""}
}

func (server *Server) listListings(c *gin.Context) {
	c.JSON(http.StatusOK, listings.All())
}

func (server *Server) getListing(c *gin.Context) {
	listing, findErr := listings.Find(c.Param("name"))
	if errors.Is(findErr, listings.ErrUnknownListing) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: findErr.Error()})
		return
	}
	if findErr != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: findErr.Error()})
		return
	}
	c.JSON(http.StatusOK, listing)
}
