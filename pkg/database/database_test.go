package database

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

// El driver rechaza mapas de varias claves como claves de índice
// (mongo.ErrMapForOrderedArgument), así que las definiciones deben ser
// bson.D o CreateMany falla antes de crear ningún índice.
func TestLedgerIndexKeysAreOrdered(t *testing.T) {
	models := ledgerIndexModels()
	if len(models) != 2 {
		t.Fatalf("índices esperados: 2, hay %d", len(models))
	}

	for i, m := range models {
		if _, ok := m.Keys.(bson.D); !ok {
			t.Errorf("índice %d: las claves deben ser bson.D, son %T", i, m.Keys)
		}
	}
}

func TestLedgerIndexDefinitions(t *testing.T) {
	models := ledgerIndexModels()

	idKeys := models[0].Keys.(bson.D)
	if len(idKeys) != 1 || idKeys[0].Key != "id" {
		t.Fatalf("el primer índice debe cubrir solo id: %v", idKeys)
	}
	if models[0].Options == nil || models[0].Options.Unique == nil || !*models[0].Options.Unique {
		t.Error("el índice de id debe ser único")
	}

	compound := models[1].Keys.(bson.D)
	want := bson.D{
		{Key: "userId", Value: 1},
		{Key: "kind", Value: 1},
		{Key: "timestamp", Value: -1},
	}
	if len(compound) != len(want) {
		t.Fatalf("clave compuesta inesperada: %v", compound)
	}
	for i := range want {
		if compound[i].Key != want[i].Key || compound[i].Value != want[i].Value {
			t.Errorf("clave %d: esperada %v, hay %v", i, want[i], compound[i])
		}
	}
}
