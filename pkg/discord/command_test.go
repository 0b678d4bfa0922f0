package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestCommandCreation(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cmd := NewCommand("test", "Comando de prueba", "test", handler)
	if cmd == nil {
		t.Fatal("NewCommand devolvió nil")
	}

	if cmd.Name != "test" {
		t.Errorf("Name = %v, want %v", cmd.Name, "test")
	}
	if cmd.Description != "Comando de prueba" {
		t.Errorf("Description = %v, want %v", cmd.Description, "Comando de prueba")
	}
	if cmd.Run == nil {
		t.Error("Run es nil")
	}
}

func TestCommandWithOptions(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	option := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "objetivo",
		Description: "Opción de prueba",
		Required:    true,
	}

	cmd := NewCommand("test", "Comando de prueba", "test", handler).
		WithOptions(option)

	if len(cmd.Options) != 1 {
		t.Fatalf("len(Options) = %v, want 1", len(cmd.Options))
	}
	if cmd.Options[0].Name != "objetivo" {
		t.Errorf("Options[0].Name = %v, want objetivo", cmd.Options[0].Name)
	}
}

func TestToApplicationCommand(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cmd := NewCommand("action", "Acción de moderación", "mod", handler).
		WithUserPermissions(discordgo.PermissionAdministrator)

	appCmd := cmd.ToApplicationCommand()
	if appCmd == nil {
		t.Fatal("ToApplicationCommand devolvió nil")
	}
	if appCmd.Name != "action" {
		t.Errorf("Name = %v, want action", appCmd.Name)
	}
	if appCmd.DefaultMemberPermissions == nil || *appCmd.DefaultMemberPermissions != discordgo.PermissionAdministrator {
		t.Error("DefaultMemberPermissions no refleja WithUserPermissions")
	}
}

func TestCommandCollection(t *testing.T) {
	cc := NewCommandCollection()
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cc.Set("mod.warnings", NewCommand("warnings", "Historial", "mod", handler))

	if cc.Size() != 1 {
		t.Errorf("Size() = %v, want 1", cc.Size())
	}

	cmd, ok := cc.Get("mod.warnings")
	if !ok || cmd.Name != "warnings" {
		t.Error("Get no devolvió el comando registrado")
	}

	if _, ok := cc.Get("inexistente"); ok {
		t.Error("Get devolvió un comando no registrado")
	}
}
