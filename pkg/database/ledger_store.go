package database

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLedger implementa moderation.LedgerStore sobre la colección
// "punishments". Los errores de Mongo se propagan tal cual al llamador;
// no hay reintentos ni cola offline.
type MongoLedger struct {
	db *Database
}

// NewMongoLedger crea el store del ledger
func NewMongoLedger(db *Database) *MongoLedger {
	return &MongoLedger{db: db}
}

var _ moderation.LedgerStore = (*MongoLedger)(nil)

// nextSequence asigna el siguiente id monótono del ledger mediante un
// $inc con upsert sobre la colección de contadores.
func (s *MongoLedger) nextSequence(ctx context.Context) (int64, error) {
	col := s.db.Collection(countersCollection)
	if col == nil {
		return 0, fmt.Errorf("sin conexión a la base de datos")
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := col.FindOneAndUpdate(ctx,
		bson.M{"_id": punishmentsCollection},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func (s *MongoLedger) Append(ctx context.Context, userID string, kind models.PunishmentKind, reason string) (*models.PunishmentRecord, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("tipo de castigo inválido: %q", kind)
	}
	if reason == "" {
		reason = models.DefaultReason
	}

	col := s.db.Collection(punishmentsCollection)
	if col == nil {
		return nil, fmt.Errorf("sin conexión a la base de datos")
	}

	id, err := s.nextSequence(ctx)
	if err != nil {
		return nil, err
	}

	rec := models.PunishmentRecord{
		ID:        id,
		UserID:    userID,
		Kind:      kind,
		Reason:    reason,
		Timestamp: time.Now().UnixMilli(),
	}
	if _, err := col.InsertOne(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *MongoLedger) History(ctx context.Context, userID string) ([]models.PunishmentRecord, error) {
	col := s.db.Collection(punishmentsCollection)
	if col == nil {
		return nil, fmt.Errorf("sin conexión a la base de datos")
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "id", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.PunishmentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *MongoLedger) ActiveWarnCount(ctx context.Context, userID string, now time.Time, window time.Duration) (int, error) {
	col := s.db.Collection(punishmentsCollection)
	if col == nil {
		return 0, fmt.Errorf("sin conexión a la base de datos")
	}

	// Estrictamente posterior al corte: un registro exactamente en
	// now-window ya no cuenta
	cutoff := now.UnixMilli() - window.Milliseconds()
	count, err := col.CountDocuments(ctx, bson.M{
		"userId":    userID,
		"kind":      models.PunishmentWarn,
		"timestamp": bson.M{"$gt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *MongoLedger) RemoveMostRecentWarn(ctx context.Context, userID string) (bool, error) {
	col := s.db.Collection(punishmentsCollection)
	if col == nil {
		return false, fmt.Errorf("sin conexión a la base de datos")
	}

	// El sort por timestamp e id garantiza una sola víctima aunque dos
	// advertencias compartan timestamp
	opts := options.FindOneAndDelete().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "id", Value: -1}})

	err := col.FindOneAndDelete(ctx, bson.M{
		"userId": userID,
		"kind":   models.PunishmentWarn,
	}, opts).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MongoLedger) ClearWarns(ctx context.Context, userID string) error {
	col := s.db.Collection(punishmentsCollection)
	if col == nil {
		return fmt.Errorf("sin conexión a la base de datos")
	}

	_, err := col.DeleteMany(ctx, bson.M{
		"userId": userID,
		"kind":   models.PunishmentWarn,
	})
	return err
}
