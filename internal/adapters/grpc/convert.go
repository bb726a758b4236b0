package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

// DiagnoseRequest is the Diagnose input. ShareURL, when set, takes
// precedence over the individual answers.
type DiagnoseRequest struct {
	Orientation        string `json:"orientation,omitempty"`
	WindowSize         string `json:"windowSize,omitempty"`
	DistanceFromWindow string `json:"distanceFromWindow,omitempty"`
	HasObstruction     bool   `json:"hasObstruction,omitempty"`
	ShareURL           string `json:"shareUrl,omitempty"`
}

// DiagnoseResponse is a diagnosis plus the link that reproduces it
type DiagnoseResponse struct {
	domain.Diagnosis
	ShareURL string `json:"shareUrl"`
}

type plantRequest struct {
	Slug string `json:"slug"`
}

type plantList struct {
	Plants []domain.Plant `json:"plants"`
}

type productsRequest struct {
	Keyword string `json:"keyword"`
}

type productList struct {
	Keyword  string           `json:"keyword"`
	Products []domain.Product `json:"products"`
}

// toStruct converts a JSON-tagged value into a protobuf Struct
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}

	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("convert %T to struct: %w", v, err)
	}
	return s, nil
}

// fromStruct fills the JSON-tagged value v from a protobuf Struct
func fromStruct(s *structpb.Struct, v any) error {
	if s == nil {
		s = &structpb.Struct{}
	}

	data, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal struct: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	return nil
}
