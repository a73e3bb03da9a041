package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/innings-sim/internal/match"
)

const defaultTrials = 1000

// Server implements InningsServer on top of a match.Service.
type Server struct {
	svc *match.Service
	log *zap.Logger
}

func NewServer(svc *match.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, log: log}
}

func (s *Server) Simulate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	sim, err := s.svc.Simulate(req)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return toStruct(sim)
}

func (s *Server) Odds(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	fields := in.GetFields()
	trials := defaultTrials
	if v, ok := fields["trials"]; ok {
		if trials, err = intField("trials", v); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}
	workers := 0
	if v, ok := fields["workers"]; ok {
		if workers, err = intField("workers", v); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}
	rep, err := s.svc.Odds(ctx, req, trials, workers)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return toStruct(rep)
}

func (s *Server) toStatus(err error) error {
	switch {
	case match.IsClientError(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	s.log.Error("rpc failed", zap.Error(err))
	return status.Error(codes.Internal, err.Error())
}

// decodeRequest reads target, overs, seed, batting and lineup. Numbers must
// be whole; lineup is a list of player ids.
func decodeRequest(in *structpb.Struct) (match.Request, error) {
	var req match.Request
	for key, v := range in.GetFields() {
		switch key {
		case "target", "overs":
			n, err := intField(key, v)
			if err != nil {
				return req, err
			}
			if key == "target" {
				req.Target = &n
			} else {
				req.Overs = &n
			}
		case "seed":
			n, err := intField(key, v)
			if err != nil {
				return req, err
			}
			if n < 0 {
				return req, fmt.Errorf("seed must be >= 0")
			}
			seed := uint64(n)
			req.Seed = &seed
		case "batting":
			s, ok := v.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return req, fmt.Errorf("batting must be a string")
			}
			req.Batting = &s.StringValue
		case "lineup":
			list := v.GetListValue()
			if list == nil {
				return req, fmt.Errorf("lineup must be a list")
			}
			for _, item := range list.GetValues() {
				id, ok := item.GetKind().(*structpb.Value_StringValue)
				if !ok {
					return req, fmt.Errorf("lineup entries must be strings")
				}
				req.Lineup = append(req.Lineup, id.StringValue)
			}
		case "trials", "workers":
		default:
			return req, fmt.Errorf("unknown field %q", key)
		}
	}
	return req, nil
}

func intField(key string, v *structpb.Value) (int, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	f := n.NumberValue
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("%s must be a whole number", key)
	}
	return int(f), nil
}

// toStruct goes through JSON so the wire shape matches the HTTP API.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
