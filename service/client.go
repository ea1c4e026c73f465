package service

import (
	"context"

	"lazymc/explicit"

	"github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Check(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Check", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Ping(ctx context.Context, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, "/"+serviceName+"/Ping", &empty.Empty{}, new(empty.Empty), opts...)
}

// The options of a check requested by a client
type Request struct {
	Model       explicit.Model
	Precision   int
	Backward    bool
	Search      string
	Seed        int64
	LazyTargets bool
	MaxNodes    int
}

// The result of a check
type Response struct {
	Safe           bool
	Description    string
	Counterexample []string
	ArgNodes       int
	Refinements    int
}

// Check the model of the request on the server
func (c *Client) CheckModel(ctx context.Context, req Request, opts ...grpc.CallOption) (Response, error) {
	in, err := req.toStruct()
	if err != nil {
		return Response{}, err
	}
	out, err := c.Check(ctx, in, opts...)
	if err != nil {
		return Response{}, err
	}
	fields := out.GetFields()
	resp := Response{
		Safe:        fields["safe"].GetBoolValue(),
		Description: fields["description"].GetStringValue(),
		ArgNodes:    int(fields["arg_nodes"].GetNumberValue()),
		Refinements: int(fields["refinements"].GetNumberValue()),
	}
	for _, v := range fields["counterexample"].GetListValue().GetValues() {
		resp.Counterexample = append(resp.Counterexample, v.GetStringValue())
	}
	return resp, nil
}

func (req Request) toStruct() (*structpb.Struct, error) {
	// Round trip through YAML to reuse the field names of the model format
	data, err := yaml.Marshal(req.Model)
	if err != nil {
		return nil, err
	}
	var model map[string]interface{}
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{
		"model":        model,
		"backward":     req.Backward,
		"lazy_targets": req.LazyTargets,
		"seed":         req.Seed,
	}
	if req.Precision > 0 {
		fields["precision"] = req.Precision
	}
	if req.MaxNodes > 0 {
		fields["max_nodes"] = req.MaxNodes
	}
	if req.Search != "" {
		fields["search"] = req.Search
	}
	return structpb.NewStruct(fields)
}
