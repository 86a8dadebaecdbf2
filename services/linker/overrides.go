package linker

import (
	"context"
	"database/sql"
	"fmt"
	"leagueexport/lib/timezone"
	"leagueexport/services/linker/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/linker")

// Override pins a leaderboard display name to a league player key.
type Override struct {
	ExternalName string
	PlayerKey    string
	CreatedAt    int64
}

// OverrideStore persists manual name to player key mappings.
type OverrideStore struct {
	db  *sql.DB
	qry *db.Queries
}

func NewOverrideStore(database *sql.DB) OverrideStore {
	return OverrideStore{
		db:  database,
		qry: db.New(database),
	}
}

func (s OverrideStore) Add(ctx context.Context, externalName, playerKey string) error {
	ctx, span := tracer.Start(ctx, "Add")
	defer span.End()

	span.SetAttributes(
		attribute.String("external_name", externalName),
		attribute.String("player_key", playerKey),
	)

	if externalName == "" || playerKey == "" {
		err := fmt.Errorf("override needs both a name and a player key")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err := s.qry.PutOverride(ctx, db.PutOverrideParams{
		ExternalName: externalName,
		PlayerKey:    playerKey,
		CreatedAt:    timezone.Now().Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Delete removes the override for externalName, deleted is false if
// there was none.
func (s OverrideStore) Delete(ctx context.Context, externalName string) (deleted bool, err error) {
	ctx, span := tracer.Start(ctx, "Delete")
	defer span.End()

	span.SetAttributes(attribute.String("external_name", externalName))

	count, err := s.qry.DeleteOverride(ctx, externalName)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	return count > 0, nil
}

func (s OverrideStore) List(ctx context.Context) ([]Override, error) {
	ctx, span := tracer.Start(ctx, "List")
	defer span.End()

	rows, err := s.qry.GetOverrides(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]Override, len(rows))
	for i, r := range rows {
		out[i] = Override{
			ExternalName: r.ExternalName,
			PlayerKey:    r.PlayerKey,
			CreatedAt:    r.CreatedAt,
		}
	}
	return out, nil
}

// Map returns the overrides in the shape Join expects.
func (s OverrideStore) Map(ctx context.Context) (map[string]string, error) {
	overrides, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(overrides))
	for _, o := range overrides {
		out[o.ExternalName] = o.PlayerKey
	}
	return out, nil
}
