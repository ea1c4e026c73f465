package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"lazymc"
	"lazymc/explicit"
	"lazymc/lazy"
	"lazymc/stats"

	"github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

// The reachability service.
//
// Check takes a request struct with the fields
//
//	model        the model as a struct with the fields of explicit.Model
//	precision    number of cells, see lazymc.WithPrecision
//	backward     use backward refinement
//	search       "bfs", "dfs" or "random"
//	seed         seed of the random search
//	lazy_targets report targets when they are removed from the waitlist
//	max_nodes    node budget of the check
//
// and returns a struct with the fields safe, description, counterexample, arg_nodes and refinements.
type ReachabilityServer interface {
	Check(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ping(context.Context, *empty.Empty) (*empty.Empty, error)
}

const serviceName = "lazymc.Reachability"

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ReachabilityServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Check", Handler: checkHandler},
		{MethodName: "Ping", Handler: pingHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lazymc/reachability",
}

func checkHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReachabilityServer).Check(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Check"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReachabilityServer).Check(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func pingHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(empty.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReachabilityServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Ping"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReachabilityServer).Ping(ctx, req.(*empty.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// Register the reachability service with the gRPC server
func Register(s grpc.ServiceRegistrar, srv ReachabilityServer) {
	s.RegisterService(&serviceDesc, srv)
}

// Checks the models sent by clients.
//
// Every request is checked on its own ARG, so requests can be served concurrently.
type Server struct {
	metrics *stats.Prometheus
	logger  *log.Logger
	base    []lazymc.CheckOption
}

// Create a Server.
//
// The metrics are optional. The base options apply to every check and are overridden by the options of the request.
func NewServer(metrics *stats.Prometheus, logger *log.Logger, base ...lazymc.CheckOption) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{
		metrics: metrics,
		logger:  logger,
		base:    base,
	}
}

func (s *Server) Ping(context.Context, *empty.Empty) (*empty.Empty, error) {
	return &emptypb.Empty{}, nil
}

func (s *Server) Check(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	sys, opts, err := decodeRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	opts = append(append([]lazymc.CheckOption{}, s.base...), opts...)
	if s.metrics != nil {
		opts = append(opts, lazymc.WithRecorder(s.metrics.Fork()))
	}

	resp, err := lazymc.Check(ctx, sys, opts...)
	switch {
	case errors.Is(err, lazy.ErrNodeBudget):
		return nil, status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, status.FromContextError(err).Err()
	case err != nil:
		return nil, status.Error(codes.Internal, err.Error())
	}

	ok, desc := resp.Response()
	s.logger.Printf("Checked %v. Safe: %v", sys.Name, ok)

	counterexample := []interface{}{}
	for _, action := range resp.Export() {
		counterexample = append(counterexample, action)
	}
	out, err := structpb.NewStruct(map[string]interface{}{
		"safe":           ok,
		"description":    desc,
		"counterexample": counterexample,
		"arg_nodes":      resp.Statistics().ArgNodes,
		"refinements":    resp.Statistics().Refinements,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

var errInvalidRequest = errors.New("service: invalid request")

func decodeRequest(in *structpb.Struct) (*explicit.System, []lazymc.CheckOption, error) {
	fields := in.GetFields()
	model := fields["model"].GetStructValue()
	if model == nil {
		return nil, nil, fmt.Errorf("%w: missing model", errInvalidRequest)
	}
	data, err := yaml.Marshal(model.AsMap())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	sys, err := explicit.Parse(data)
	if err != nil {
		return nil, nil, err
	}

	opts := []lazymc.CheckOption{}
	if v, ok := fields["precision"]; ok {
		opts = append(opts, lazymc.WithPrecision(int(v.GetNumberValue())))
	}
	if fields["backward"].GetBoolValue() {
		opts = append(opts, lazymc.Backward())
	}
	if fields["lazy_targets"].GetBoolValue() {
		opts = append(opts, lazymc.LazyTargetDetection())
	}
	if v, ok := fields["max_nodes"]; ok {
		opts = append(opts, lazymc.MaxNodes(int(v.GetNumberValue())))
	}
	switch search := fields["search"].GetStringValue(); search {
	case "":
	case "bfs":
		opts = append(opts, lazymc.BFS())
	case "dfs":
		opts = append(opts, lazymc.DFS())
	case "random":
		opts = append(opts, lazymc.RandomSearch(int64(fields["seed"].GetNumberValue())))
	default:
		return nil, nil, fmt.Errorf("%w: unknown search strategy %q", errInvalidRequest, search)
	}
	return sys, opts, nil
}

// Logs every call handled by the server
func LoggingInterceptor(logger *log.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		logger.Printf("%v: %v", info.FullMethod, status.Code(err))
		return resp, err
	}
}
