package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// TripServiceName is the fully-qualified name of the TripService service.
const TripServiceName = "qitta.v1.TripService"

// Procedure paths of TripService.
const (
	TripServiceCreateTripProcedure        = "/qitta.v1.TripService/CreateTrip"
	TripServiceUpdateTripProcedure        = "/qitta.v1.TripService/UpdateTrip"
	TripServiceDeleteTripProcedure        = "/qitta.v1.TripService/DeleteTrip"
	TripServiceGetTripProcedure           = "/qitta.v1.TripService/GetTrip"
	TripServiceListTripsProcedure         = "/qitta.v1.TripService/ListTrips"
	TripServiceAddParticipantsProcedure   = "/qitta.v1.TripService/AddParticipants"
	TripServiceRemoveParticipantProcedure = "/qitta.v1.TripService/RemoveParticipant"
	TripServiceUpdateParticipantProcedure = "/qitta.v1.TripService/UpdateParticipant"
	TripServiceListParticipantsProcedure  = "/qitta.v1.TripService/ListParticipants"
	TripServiceRecordPaymentProcedure     = "/qitta.v1.TripService/RecordPayment"
	TripServiceTogglePaidProcedure        = "/qitta.v1.TripService/TogglePaid"
	TripServiceRegisterExpenseProcedure   = "/qitta.v1.TripService/RegisterExpense"
	TripServiceDeleteExpenseProcedure     = "/qitta.v1.TripService/DeleteExpense"
	TripServiceDistributeSurplusProcedure = "/qitta.v1.TripService/DistributeSurplus"
	TripServiceGetSummaryProcedure        = "/qitta.v1.TripService/GetSummary"
	TripServiceGetReportProcedure         = "/qitta.v1.TripService/GetReport"
)

// TripServiceHandler is implemented by the trip service.
type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error)
	UpdateTrip(context.Context, *connect.Request[UpdateTripRequest]) (*connect.Response[UpdateTripResponse], error)
	DeleteTrip(context.Context, *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error)
	GetTrip(context.Context, *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error)
	AddParticipants(context.Context, *connect.Request[AddParticipantsRequest]) (*connect.Response[AddParticipantsResponse], error)
	RemoveParticipant(context.Context, *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error)
	UpdateParticipant(context.Context, *connect.Request[UpdateParticipantRequest]) (*connect.Response[UpdateParticipantResponse], error)
	ListParticipants(context.Context, *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error)
	RecordPayment(context.Context, *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error)
	TogglePaid(context.Context, *connect.Request[TogglePaidRequest]) (*connect.Response[TogglePaidResponse], error)
	RegisterExpense(context.Context, *connect.Request[RegisterExpenseRequest]) (*connect.Response[RegisterExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	DistributeSurplus(context.Context, *connect.Request[DistributeSurplusRequest]) (*connect.Response[DistributeSurplusResponse], error)
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
	GetReport(context.Context, *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error)
}

// NewTripServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	handlers := map[string]http.Handler{
		TripServiceCreateTripProcedure:        connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opts...),
		TripServiceUpdateTripProcedure:        connect.NewUnaryHandler(TripServiceUpdateTripProcedure, svc.UpdateTrip, opts...),
		TripServiceDeleteTripProcedure:        connect.NewUnaryHandler(TripServiceDeleteTripProcedure, svc.DeleteTrip, opts...),
		TripServiceGetTripProcedure:           connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, opts...),
		TripServiceListTripsProcedure:         connect.NewUnaryHandler(TripServiceListTripsProcedure, svc.ListTrips, opts...),
		TripServiceAddParticipantsProcedure:   connect.NewUnaryHandler(TripServiceAddParticipantsProcedure, svc.AddParticipants, opts...),
		TripServiceRemoveParticipantProcedure: connect.NewUnaryHandler(TripServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...),
		TripServiceUpdateParticipantProcedure: connect.NewUnaryHandler(TripServiceUpdateParticipantProcedure, svc.UpdateParticipant, opts...),
		TripServiceListParticipantsProcedure:  connect.NewUnaryHandler(TripServiceListParticipantsProcedure, svc.ListParticipants, opts...),
		TripServiceRecordPaymentProcedure:     connect.NewUnaryHandler(TripServiceRecordPaymentProcedure, svc.RecordPayment, opts...),
		TripServiceTogglePaidProcedure:        connect.NewUnaryHandler(TripServiceTogglePaidProcedure, svc.TogglePaid, opts...),
		TripServiceRegisterExpenseProcedure:   connect.NewUnaryHandler(TripServiceRegisterExpenseProcedure, svc.RegisterExpense, opts...),
		TripServiceDeleteExpenseProcedure:     connect.NewUnaryHandler(TripServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		TripServiceDistributeSurplusProcedure: connect.NewUnaryHandler(TripServiceDistributeSurplusProcedure, svc.DistributeSurplus, opts...),
		TripServiceGetSummaryProcedure:        connect.NewUnaryHandler(TripServiceGetSummaryProcedure, svc.GetSummary, opts...),
		TripServiceGetReportProcedure:         connect.NewUnaryHandler(TripServiceGetReportProcedure, svc.GetReport, opts...),
	}

	return "/" + TripServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// TripServiceClient calls TripService over HTTP.
type TripServiceClient struct {
	createTrip        *connect.Client[CreateTripRequest, CreateTripResponse]
	updateTrip        *connect.Client[UpdateTripRequest, UpdateTripResponse]
	deleteTrip        *connect.Client[DeleteTripRequest, DeleteTripResponse]
	getTrip           *connect.Client[GetTripRequest, GetTripResponse]
	listTrips         *connect.Client[ListTripsRequest, ListTripsResponse]
	addParticipants   *connect.Client[AddParticipantsRequest, AddParticipantsResponse]
	removeParticipant *connect.Client[RemoveParticipantRequest, RemoveParticipantResponse]
	updateParticipant *connect.Client[UpdateParticipantRequest, UpdateParticipantResponse]
	listParticipants  *connect.Client[ListParticipantsRequest, ListParticipantsResponse]
	recordPayment     *connect.Client[RecordPaymentRequest, RecordPaymentResponse]
	togglePaid        *connect.Client[TogglePaidRequest, TogglePaidResponse]
	registerExpense   *connect.Client[RegisterExpenseRequest, RegisterExpenseResponse]
	deleteExpense     *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	distributeSurplus *connect.Client[DistributeSurplusRequest, DistributeSurplusResponse]
	getSummary        *connect.Client[GetSummaryRequest, GetSummaryResponse]
	getReport         *connect.Client[GetReportRequest, GetReportResponse]
}

// NewTripServiceClient constructs a client for TripService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &TripServiceClient{
		createTrip:        connect.NewClient[CreateTripRequest, CreateTripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, opts...),
		updateTrip:        connect.NewClient[UpdateTripRequest, UpdateTripResponse](httpClient, baseURL+TripServiceUpdateTripProcedure, opts...),
		deleteTrip:        connect.NewClient[DeleteTripRequest, DeleteTripResponse](httpClient, baseURL+TripServiceDeleteTripProcedure, opts...),
		getTrip:           connect.NewClient[GetTripRequest, GetTripResponse](httpClient, baseURL+TripServiceGetTripProcedure, opts...),
		listTrips:         connect.NewClient[ListTripsRequest, ListTripsResponse](httpClient, baseURL+TripServiceListTripsProcedure, opts...),
		addParticipants:   connect.NewClient[AddParticipantsRequest, AddParticipantsResponse](httpClient, baseURL+TripServiceAddParticipantsProcedure, opts...),
		removeParticipant: connect.NewClient[RemoveParticipantRequest, RemoveParticipantResponse](httpClient, baseURL+TripServiceRemoveParticipantProcedure, opts...),
		updateParticipant: connect.NewClient[UpdateParticipantRequest, UpdateParticipantResponse](httpClient, baseURL+TripServiceUpdateParticipantProcedure, opts...),
		listParticipants:  connect.NewClient[ListParticipantsRequest, ListParticipantsResponse](httpClient, baseURL+TripServiceListParticipantsProcedure, opts...),
		recordPayment:     connect.NewClient[RecordPaymentRequest, RecordPaymentResponse](httpClient, baseURL+TripServiceRecordPaymentProcedure, opts...),
		togglePaid:        connect.NewClient[TogglePaidRequest, TogglePaidResponse](httpClient, baseURL+TripServiceTogglePaidProcedure, opts...),
		registerExpense:   connect.NewClient[RegisterExpenseRequest, RegisterExpenseResponse](httpClient, baseURL+TripServiceRegisterExpenseProcedure, opts...),
		deleteExpense:     connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+TripServiceDeleteExpenseProcedure, opts...),
		distributeSurplus: connect.NewClient[DistributeSurplusRequest, DistributeSurplusResponse](httpClient, baseURL+TripServiceDistributeSurplusProcedure, opts...),
		getSummary:        connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+TripServiceGetSummaryProcedure, opts...),
		getReport:         connect.NewClient[GetReportRequest, GetReportResponse](httpClient, baseURL+TripServiceGetReportProcedure, opts...),
	}
}

func (c *TripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) UpdateTrip(ctx context.Context, req *connect.Request[UpdateTripRequest]) (*connect.Response[UpdateTripResponse], error) {
	return c.updateTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) DeleteTrip(ctx context.Context, req *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error) {
	return c.deleteTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) GetTrip(ctx context.Context, req *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) ListTrips(ctx context.Context, req *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *TripServiceClient) AddParticipants(ctx context.Context, req *connect.Request[AddParticipantsRequest]) (*connect.Response[AddParticipantsResponse], error) {
	return c.addParticipants.CallUnary(ctx, req)
}

func (c *TripServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *TripServiceClient) UpdateParticipant(ctx context.Context, req *connect.Request[UpdateParticipantRequest]) (*connect.Response[UpdateParticipantResponse], error) {
	return c.updateParticipant.CallUnary(ctx, req)
}

func (c *TripServiceClient) ListParticipants(ctx context.Context, req *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error) {
	return c.listParticipants.CallUnary(ctx, req)
}

func (c *TripServiceClient) RecordPayment(ctx context.Context, req *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

func (c *TripServiceClient) TogglePaid(ctx context.Context, req *connect.Request[TogglePaidRequest]) (*connect.Response[TogglePaidResponse], error) {
	return c.togglePaid.CallUnary(ctx, req)
}

func (c *TripServiceClient) RegisterExpense(ctx context.Context, req *connect.Request[RegisterExpenseRequest]) (*connect.Response[RegisterExpenseResponse], error) {
	return c.registerExpense.CallUnary(ctx, req)
}

func (c *TripServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *TripServiceClient) DistributeSurplus(ctx context.Context, req *connect.Request[DistributeSurplusRequest]) (*connect.Response[DistributeSurplusResponse], error) {
	return c.distributeSurplus.CallUnary(ctx, req)
}

func (c *TripServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *TripServiceClient) GetReport(ctx context.Context, req *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error) {
	return c.getReport.CallUnary(ctx, req)
}
