package journal

import (
	"context"
	"database/sql"

	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ClipFinance/xchain-mint/journal/models"
	"github.com/pkg/errors"
)

// GetNetworks returns the networks with their preferred RPC, ordered by chain ID.
// Chains without an active RPC are skipped.
//
// Parameters:
// - ctx: the context for managing the request.
//
// Returns:
// - []*types.NetworkConfig: the network configurations.
// - error: an error if the database operation fails or a row has an unknown chain type.
func (s *Store) GetNetworks(ctx context.Context) ([]*types.NetworkConfig, error) {
	db, err := sql.Open(s.driver, s.dbConnStr)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT DISTINCT ON (c.chain_id)
			c.chain_id,
			c.name,
			c.chain_type,
			r.url,
			c.token_address
		FROM chains c
		JOIN rpcs r ON r.chain_id = c.chain_id AND r.active = TRUE
		WHERE c.active = TRUE
		ORDER BY c.chain_id ASC, r.created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query networks")
	}
	defer rows.Close()

	var networks []*types.NetworkConfig
	for rows.Next() {
		var network models.Network
		var chainType sql.NullString

		if err := rows.Scan(
			&network.ChainID,
			&network.Name,
			&chainType,
			&network.RpcURL,
			&network.TokenAddress,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan network")
		}
		network.Type = chainType.String

		parsed := types.ParseChainType(network.Type)
		if parsed == types.UNKNOWN {
			return nil, errors.Wrapf(commonerrors.ErrInvalidChainType, "chain %d has type %q", network.ChainID, network.Type)
		}

		networks = append(networks, &types.NetworkConfig{
			Name:         network.Name,
			ChainType:    parsed,
			ChainID:      network.ChainID,
			RpcUrl:       network.RpcURL,
			TokenAddress: network.TokenAddress,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate networks")
	}

	return networks, nil
}
