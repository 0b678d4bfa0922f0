// Package database gestiona la conexión a MongoDB y los stores de
// moderación respaldados por ella.
package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Nombres de colecciones. "counters" guarda las secuencias de ids.
const (
	punishmentsCollection = "punishments"
	settingsCollection    = "guild_settings"
	countersCollection    = "counters"
)

// Database envuelve el cliente de MongoDB
type Database struct {
	client *mongo.Client
	db     *mongo.Database
	mu     sync.RWMutex
}

var (
	database *Database
	dbOnce   sync.Once
)

// Init inicializa la instancia global y conecta
func Init(mongoURL, dbName string) (*Database, error) {
	var err error
	dbOnce.Do(func() {
		database = &Database{}
		err = database.Connect(mongoURL, dbName)
	})
	return database, err
}

// Get devuelve la instancia global
func Get() *Database {
	return database
}

// Connect establece la conexión y verifica con un ping
func (d *Database) Connect(mongoURL, dbName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	logger.System("Intentando conectar a la base de datos...", "DB")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(mongoURL).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		logger.Critical("Fallo al conectar con la base de datos.", "DB")
		return err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Critical("Fallo al verificar conexión con la base de datos.", "DB")
		return err
	}

	d.client = client
	d.db = client.Database(dbName)

	logger.Success("Conectado exitosamente a la base de datos.", "DB")
	return nil
}

// Disconnect cierra la conexión
func (d *Database) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := d.client.Disconnect(ctx); err != nil {
		return err
	}
	logger.Warn("La base de datos ha sido desconectada", "DB")
	return nil
}

// Ping mide el tiempo de respuesta de la base de datos
func (d *Database) Ping() (time.Duration, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.client == nil {
		return 0, fmt.Errorf("sin conexión a la base de datos")
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := d.client.Ping(ctx, readpref.Primary())
	return time.Since(start), err
}

// GetStatus devuelve el estado de la conexión para la UI
func (d *Database) GetStatus() (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.client == nil {
		return "🔴 | Desconectado", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.client.Ping(ctx, readpref.Primary()); err != nil {
		return "🔴 | Desconectado", false
	}
	return "🟢 | En linea", true
}

// Collection devuelve una colección de la base de datos activa
func (d *Database) Collection(name string) *mongo.Collection {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		return nil
	}
	return d.db.Collection(name)
}

// ledgerIndexModels define los índices del ledger: id único y la clave
// compuesta de las consultas de advertencias. Las claves van en bson.D;
// el driver rechaza mapas de varias claves por no tener orden.
func ledgerIndexModels() []mongo.IndexModel {
	unique := true
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: &options.IndexOptions{Unique: &unique},
		},
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "kind", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
	}
}

// EnsureIndexes crea los índices que necesitan los stores: id único en
// el ledger y userId+kind para las consultas de advertencias.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	col := d.Collection(punishmentsCollection)
	if col == nil {
		return fmt.Errorf("sin conexión a la base de datos")
	}

	_, err := col.Indexes().CreateMany(ctx, ledgerIndexModels())
	return err
}
