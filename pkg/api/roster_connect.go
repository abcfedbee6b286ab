package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// RosterServiceName is the fully-qualified name of the RosterService service.
const RosterServiceName = "qitta.v1.RosterService"

const RosterServiceFetchRosterProcedure = "/qitta.v1.RosterService/FetchRoster"

// RosterServiceHandler is implemented by the roster service.
type RosterServiceHandler interface {
	FetchRoster(context.Context, *connect.Request[FetchRosterRequest]) (*connect.Response[FetchRosterResponse], error)
}

// NewRosterServiceHandler builds an HTTP handler from the service implementation.
func NewRosterServiceHandler(svc RosterServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	fetchRoster := connect.NewUnaryHandler(RosterServiceFetchRosterProcedure, svc.FetchRoster, opts...)

	return "/" + RosterServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case RosterServiceFetchRosterProcedure:
			fetchRoster.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// RosterServiceClient calls RosterService over HTTP.
type RosterServiceClient struct {
	fetchRoster *connect.Client[FetchRosterRequest, FetchRosterResponse]
}

// NewRosterServiceClient constructs a client for RosterService.
func NewRosterServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *RosterServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &RosterServiceClient{
		fetchRoster: connect.NewClient[FetchRosterRequest, FetchRosterResponse](httpClient, baseURL+RosterServiceFetchRosterProcedure, opts...),
	}
}

func (c *RosterServiceClient) FetchRoster(ctx context.Context, req *connect.Request[FetchRosterRequest]) (*connect.Response[FetchRosterResponse], error) {
	return c.fetchRoster.CallUnary(ctx, req)
}
