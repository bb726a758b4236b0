package grpc

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/ports"
)

// DiagnosisHandler implements the gRPC DiagnosisService
type DiagnosisHandler struct {
	catalog  domain.PlantCatalog
	searcher ports.ProductSearcher
	baseURL  string
}

// NewDiagnosisHandler creates a new gRPC handler.
// baseURL is the public site address used to build share links.
func NewDiagnosisHandler(catalog domain.PlantCatalog, searcher ports.ProductSearcher, baseURL string) *DiagnosisHandler {
	return &DiagnosisHandler{
		catalog:  catalog,
		searcher: searcher,
		baseURL:  baseURL,
	}
}

// Diagnose scores a room and recommends plants
func (h *DiagnosisHandler) Diagnose(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in DiagnoseRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	profile, err := in.profile()
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	diagnosis := domain.Diagnose(profile, h.catalog.All())

	log.Info().
		Str("orientation", string(profile.Orientation)).
		Str("window", string(profile.WindowSize)).
		Str("distance", string(profile.Distance)).
		Bool("obstructed", profile.HasObstruction).
		Int("score", diagnosis.Score).
		Str("level", string(diagnosis.Level)).
		Msg("Diagnose called")

	resp, err := toStruct(DiagnoseResponse{
		Diagnosis: diagnosis,
		ShareURL:  domain.ShareURL(h.baseURL, profile),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to encode diagnosis")
		return nil, status.Error(codes.Internal, "failed to encode diagnosis")
	}
	return resp, nil
}

// profile resolves the request to a validated room profile
func (r DiagnoseRequest) profile() (domain.RoomProfile, error) {
	if r.ShareURL != "" {
		p, ok := domain.DecodeShareURL(r.ShareURL)
		if !ok {
			return domain.RoomProfile{}, errors.New("share url does not describe a room profile")
		}
		return p, nil
	}
	return domain.NewRoomProfile(r.Orientation, r.WindowSize, r.DistanceFromWindow, r.HasObstruction)
}

// ListPlants returns the whole catalog in curated order
func (h *DiagnosisHandler) ListPlants(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	plants := h.catalog.All()
	log.Info().Int("count", len(plants)).Msg("ListPlants called")

	resp, err := toStruct(plantList{Plants: plants})
	if err != nil {
		log.Error().Err(err).Msg("failed to encode plants")
		return nil, status.Error(codes.Internal, "failed to encode plants")
	}
	return resp, nil
}

// GetPlant returns one plant by slug
func (h *DiagnosisHandler) GetPlant(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in plantRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if in.Slug == "" {
		return nil, status.Error(codes.InvalidArgument, "slug is required")
	}

	log.Info().Str("slug", in.Slug).Msg("GetPlant called")

	plant, err := h.catalog.BySlug(in.Slug)
	if err != nil {
		return nil, toStatus(err)
	}

	resp, err := toStruct(plant)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode plant")
		return nil, status.Error(codes.Internal, "failed to encode plant")
	}
	return resp, nil
}

// SearchProducts returns shop listings for a keyword
func (h *DiagnosisHandler) SearchProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in productsRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	log.Info().Str("keyword", in.Keyword).Msg("SearchProducts called")

	products, err := h.searcher.Search(ctx, in.Keyword)
	if err != nil {
		log.Error().Err(err).Str("keyword", in.Keyword).Msg("product search failed")
		return nil, toStatus(err)
	}
	if products == nil {
		products = []domain.Product{}
	}

	resp, err := toStruct(productList{Keyword: in.Keyword, Products: products})
	if err != nil {
		log.Error().Err(err).Msg("failed to encode products")
		return nil, status.Error(codes.Internal, "failed to encode products")
	}
	return resp, nil
}

// toStatus maps domain errors onto gRPC status codes
func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidProfile), errors.Is(err, domain.ErrEmptyKeyword):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrPlantNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrSearchUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
