package minecraft

// LaunchAccount contains the identity that is passed to the game.
// Obtaining it (Microsoft login) is not part of shard
type LaunchAccount struct {
	UUID        string `json:"uuid"`
	Username    string `json:"username"`
	AccessToken string `json:"accessToken"`
	// XUID is only known for xbox live accounts
	XUID string `json:"xuid,omitempty"`
}

// UserType is always "msa", legacy and mojang accounts are gone
func (a *LaunchAccount) UserType() string {
	return "msa"
}
