package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/ethereum/go-ethereum/common"

	"github.com/uniroute-labs/uniroute/domain"
	"github.com/uniroute-labs/uniroute/domain/mvc"
)

var _ mvc.PoolDiscoverer = &snapshotPoolDiscoverer{}

// snapshotPoolDiscoverer reads indexer-produced pool snapshots from S3. One
// object per (chain, protocol) holds the full PoolInfo list as JSON.
type snapshotPoolDiscoverer struct {
	client s3iface.S3API
	bucket string
}

func NewSnapshotPoolDiscoverer(config domain.PoolsConfig) (mvc.PoolDiscoverer, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(config.SnapshotRegion)})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return &snapshotPoolDiscoverer{
		client: s3.New(sess),
		bucket: config.SnapshotBucket,
	}, nil
}

// NewSnapshotPoolDiscovererWithClient injects the S3 client, used by tests.
func NewSnapshotPoolDiscovererWithClient(client s3iface.S3API, bucket string) mvc.PoolDiscoverer {
	return &snapshotPoolDiscoverer{client: client, bucket: bucket}
}

func (s *snapshotPoolDiscoverer) Name() string {
	return "s3-snapshot"
}

// GetPools implements mvc.PoolDiscoverer.
func (s *snapshotPoolDiscoverer) GetPools(ctx context.Context, chain domain.ChainID, protocol domain.Protocol) ([]domain.PoolInfo, error) {
	key := fmt.Sprintf("pools/%d/%s.json", chain, protocol)
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get snapshot %s: %w", key, err)
	}
	defer out.Body.Close()

	var pools []domain.PoolInfo
	if err := json.NewDecoder(out.Body).Decode(&pools); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return pools, nil
}

// GetPoolsForTokens implements mvc.PoolDiscoverer. Snapshots are not indexed
// per pair; the full set is returned and top-pool selection narrows it, since
// intermediary and top-TVL slices need pools touching neither token.
func (s *snapshotPoolDiscoverer) GetPoolsForTokens(ctx context.Context, chain domain.ChainID, protocol domain.Protocol, tokenIn, tokenOut common.Address, hooks domain.HooksOption, skipTokenCache bool) ([]domain.PoolInfo, error) {
	return s.GetPools(ctx, chain, protocol)
}
