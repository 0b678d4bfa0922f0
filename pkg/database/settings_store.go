package database

import (
	"context"
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSettings implementa moderation.SettingsStore sobre la colección
// "guild_settings", un documento por guild con _id = guildId.
type MongoSettings struct {
	db *Database
}

// NewMongoSettings crea el store de configuración
func NewMongoSettings(db *Database) *MongoSettings {
	return &MongoSettings{db: db}
}

var _ moderation.SettingsStore = (*MongoSettings)(nil)

// Get devuelve la configuración del guild. Si no existe, el upsert con
// $setOnInsert crea el documento por defecto de forma atómica bajo la
// restricción de _id, sin carrera de filas duplicadas.
func (s *MongoSettings) Get(ctx context.Context, guildID string) (*models.GuildSettings, error) {
	col := s.db.Collection(settingsCollection)
	if col == nil {
		return nil, fmt.Errorf("sin conexión a la base de datos")
	}

	defaults := models.DefaultGuildSettings(guildID)
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var settings models.GuildSettings
	err := col.FindOneAndUpdate(ctx,
		bson.M{"_id": guildID},
		bson.M{"$setOnInsert": defaults},
		opts,
	).Decode(&settings)
	if err != nil {
		return nil, err
	}

	// Documentos antiguos pueden carecer de las listas
	if settings.WhitelistRoles == nil {
		settings.WhitelistRoles = []string{}
	}
	if settings.WhitelistUsers == nil {
		settings.WhitelistUsers = []string{}
	}
	return &settings, nil
}

// Update lee la fila actual, fusiona el patch y reescribe el documento
// completo. Sin verificación optimista: gana la última escritura.
func (s *MongoSettings) Update(ctx context.Context, guildID string, patch models.SettingsPatch) error {
	col := s.db.Collection(settingsCollection)
	if col == nil {
		return fmt.Errorf("sin conexión a la base de datos")
	}

	current, err := s.Get(ctx, guildID)
	if err != nil {
		return err
	}

	merged := patch.Apply(*current)
	_, err = col.ReplaceOne(ctx, bson.M{"_id": guildID}, merged)
	return err
}
