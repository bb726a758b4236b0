package grpc

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

// Client calls a remote DiagnosisService
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps an established connection
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Dial connects to addr, using mTLS when tlsCfg is set
func Dial(addr string, tlsCfg *tls.Config) (*grpc.ClientConn, error) {
	creds := insecure.NewCredentials()
	if tlsCfg != nil {
		creds = credentials.NewTLS(tlsCfg)
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return conn, nil
}

// Diagnose asks the server to diagnose a room profile
func (c *Client) Diagnose(ctx context.Context, p domain.RoomProfile) (*DiagnoseResponse, error) {
	req, err := toStruct(DiagnoseRequest{
		Orientation:        string(p.Orientation),
		WindowSize:         string(p.WindowSize),
		DistanceFromWindow: string(p.Distance),
		HasObstruction:     p.HasObstruction,
	})
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, diagnoseMethod, req, out); err != nil {
		return nil, fromStatus(err)
	}

	var resp DiagnoseResponse
	if err := fromStruct(out, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPlants returns the server's catalog
func (c *Client) ListPlants(ctx context.Context) ([]domain.Plant, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, listPlantsMethod, &emptypb.Empty{}, out); err != nil {
		return nil, fromStatus(err)
	}

	var resp plantList
	if err := fromStruct(out, &resp); err != nil {
		return nil, err
	}
	return resp.Plants, nil
}

// GetPlant returns one plant by slug
func (c *Client) GetPlant(ctx context.Context, slug string) (domain.Plant, error) {
	req, err := toStruct(plantRequest{Slug: slug})
	if err != nil {
		return domain.Plant{}, err
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, getPlantMethod, req, out); err != nil {
		return domain.Plant{}, fromStatus(err)
	}

	var plant domain.Plant
	if err := fromStruct(out, &plant); err != nil {
		return domain.Plant{}, err
	}
	return plant, nil
}

// SearchProducts returns shop listings for keyword
func (c *Client) SearchProducts(ctx context.Context, keyword string) ([]domain.Product, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, domain.ErrEmptyKeyword
	}

	req, err := toStruct(productsRequest{Keyword: keyword})
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, searchProductsMethod, req, out); err != nil {
		return nil, fromStatus(err)
	}

	var resp productList
	if err := fromStruct(out, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// fromStatus turns well-known status codes back into domain errors
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", domain.ErrInvalidProfile, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", domain.ErrPlantNotFound, st.Message())
	case codes.Unavailable:
		return fmt.Errorf("%w: %s", domain.ErrSearchUnavailable, st.Message())
	default:
		return err
	}
}
