package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/vibewalk/internal/api"
)

const PlanServiceName = "vibewalk.v1.PlanService"

const (
	PlanServiceSavePlanProcedure  = "/vibewalk.v1.PlanService/SavePlan"
	PlanServiceAddReviewProcedure = "/vibewalk.v1.PlanService/AddReview"
	PlanServiceListPlansProcedure = "/vibewalk.v1.PlanService/ListPlans"
	PlanServiceGetPlanProcedure   = "/vibewalk.v1.PlanService/GetPlan"
)

// PlanServiceHandler is implemented by the plan service.
type PlanServiceHandler interface {
	SavePlan(context.Context, *connect.Request[api.SavePlanRequest]) (*connect.Response[api.SavePlanResponse], error)
	AddReview(context.Context, *connect.Request[api.AddReviewRequest]) (*connect.Response[api.AddReviewResponse], error)
	ListPlans(context.Context, *connect.Request[api.ListPlansRequest]) (*connect.Response[api.ListPlansResponse], error)
	GetPlan(context.Context, *connect.Request[api.GetPlanRequest]) (*connect.Response[api.GetPlanResponse], error)
}

// NewPlanServiceHandler builds an HTTP handler from the service implementation.
func NewPlanServiceHandler(svc PlanServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	savePlan := connect.NewUnaryHandler(PlanServiceSavePlanProcedure, svc.SavePlan, opts...)
	addReview := connect.NewUnaryHandler(PlanServiceAddReviewProcedure, svc.AddReview, opts...)
	listPlans := connect.NewUnaryHandler(PlanServiceListPlansProcedure, svc.ListPlans, opts...)
	getPlan := connect.NewUnaryHandler(PlanServiceGetPlanProcedure, svc.GetPlan, opts...)
	return "/" + PlanServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PlanServiceSavePlanProcedure:
			savePlan.ServeHTTP(w, r)
		case PlanServiceAddReviewProcedure:
			addReview.ServeHTTP(w, r)
		case PlanServiceListPlansProcedure:
			listPlans.ServeHTTP(w, r)
		case PlanServiceGetPlanProcedure:
			getPlan.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// PlanServiceClient is a client for the vibewalk.v1.PlanService service.
type PlanServiceClient interface {
	SavePlan(context.Context, *connect.Request[api.SavePlanRequest]) (*connect.Response[api.SavePlanResponse], error)
	AddReview(context.Context, *connect.Request[api.AddReviewRequest]) (*connect.Response[api.AddReviewResponse], error)
	ListPlans(context.Context, *connect.Request[api.ListPlansRequest]) (*connect.Response[api.ListPlansResponse], error)
	GetPlan(context.Context, *connect.Request[api.GetPlanRequest]) (*connect.Response[api.GetPlanResponse], error)
}

// NewPlanServiceClient constructs a client for the vibewalk.v1.PlanService service.
func NewPlanServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PlanServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &planServiceClient{
		savePlan:  connect.NewClient[api.SavePlanRequest, api.SavePlanResponse](httpClient, baseURL+PlanServiceSavePlanProcedure, opts...),
		addReview: connect.NewClient[api.AddReviewRequest, api.AddReviewResponse](httpClient, baseURL+PlanServiceAddReviewProcedure, opts...),
		listPlans: connect.NewClient[api.ListPlansRequest, api.ListPlansResponse](httpClient, baseURL+PlanServiceListPlansProcedure, opts...),
		getPlan:   connect.NewClient[api.GetPlanRequest, api.GetPlanResponse](httpClient, baseURL+PlanServiceGetPlanProcedure, opts...),
	}
}

type planServiceClient struct {
	savePlan  *connect.Client[api.SavePlanRequest, api.SavePlanResponse]
	addReview *connect.Client[api.AddReviewRequest, api.AddReviewResponse]
	listPlans *connect.Client[api.ListPlansRequest, api.ListPlansResponse]
	getPlan   *connect.Client[api.GetPlanRequest, api.GetPlanResponse]
}

func (c *planServiceClient) SavePlan(ctx context.Context, req *connect.Request[api.SavePlanRequest]) (*connect.Response[api.SavePlanResponse], error) {
	return c.savePlan.CallUnary(ctx, req)
}

func (c *planServiceClient) AddReview(ctx context.Context, req *connect.Request[api.AddReviewRequest]) (*connect.Response[api.AddReviewResponse], error) {
	return c.addReview.CallUnary(ctx, req)
}

func (c *planServiceClient) ListPlans(ctx context.Context, req *connect.Request[api.ListPlansRequest]) (*connect.Response[api.ListPlansResponse], error) {
	return c.listPlans.CallUnary(ctx, req)
}

func (c *planServiceClient) GetPlan(ctx context.Context, req *connect.Request[api.GetPlanRequest]) (*connect.Response[api.GetPlanResponse], error) {
	return c.getPlan.CallUnary(ctx, req)
}
