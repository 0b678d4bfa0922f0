package models

// DefaultMaxWarnings es el límite de advertencias por defecto
const DefaultMaxWarnings = 3

// GuildSettings representa la configuración de moderación de un servidor.
// Existe exactamente un documento por guild; se crea con valores por
// defecto en la primera lectura.
type GuildSettings struct {
	GuildID        string   `bson:"_id" json:"guildId"`
	BanRoleID      string   `bson:"banRoleId,omitempty" json:"banRoleId,omitempty"`
	MemberRoleID   string   `bson:"memberRoleId,omitempty" json:"memberRoleId,omitempty"`
	LogChannelID   string   `bson:"logChannelId,omitempty" json:"logChannelId,omitempty"`
	MaxWarnings    int      `bson:"maxWarnings" json:"maxWarnings"`
	WhitelistRoles []string `bson:"whitelistRoles" json:"whitelistRoles"`
	WhitelistUsers []string `bson:"whitelistUsers" json:"whitelistUsers"`
}

// DefaultGuildSettings devuelve la configuración inicial de un guild
func DefaultGuildSettings(guildID string) GuildSettings {
	return GuildSettings{
		GuildID:        guildID,
		MaxWarnings:    DefaultMaxWarnings,
		WhitelistRoles: []string{},
		WhitelistUsers: []string{},
	}
}

// SettingsPatch es una actualización parcial de GuildSettings. Un campo
// nil conserva el valor actual; un campo presente lo reemplaza por
// completo (las listas se sustituyen enteras, nunca se concatenan).
type SettingsPatch struct {
	BanRoleID      *string
	MemberRoleID   *string
	LogChannelID   *string
	MaxWarnings    *int
	WhitelistRoles *[]string
	WhitelistUsers *[]string
}

// Apply fusiona el patch sobre una copia de s y la devuelve
func (p SettingsPatch) Apply(s GuildSettings) GuildSettings {
	if p.BanRoleID != nil {
		s.BanRoleID = *p.BanRoleID
	}
	if p.MemberRoleID != nil {
		s.MemberRoleID = *p.MemberRoleID
	}
	if p.LogChannelID != nil {
		s.LogChannelID = *p.LogChannelID
	}
	if p.MaxWarnings != nil {
		s.MaxWarnings = *p.MaxWarnings
	}
	if p.WhitelistRoles != nil {
		s.WhitelistRoles = append([]string{}, (*p.WhitelistRoles)...)
	}
	if p.WhitelistUsers != nil {
		s.WhitelistUsers = append([]string{}, (*p.WhitelistUsers)...)
	}
	return s
}
