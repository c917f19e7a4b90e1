package spyparty

var (
	Spy    = "spy"
	Sniper = "sniper"
)

// Replay is a decoded replay file. Only the header is read.
type Replay struct {
	Header Header `json:"header"`
}

// SpyName is the name people see for the spy: the display name if there is one.
func (r *Replay) SpyName() string {
	if r.Header.SpyDisplayName != nil {
		return *r.Header.SpyDisplayName
	}
	return r.Header.SpyUserName
}

func (r *Replay) SniperName() string {
	if r.Header.SniperDisplayName != nil {
		return *r.Header.SniperDisplayName
	}
	return r.Header.SniperUserName
}

// HasSpy checks both the username and the display name of the spy.
func (r *Replay) HasSpy(name string) bool {
	return r.Header.SpyUserName == name ||
		(r.Header.SpyDisplayName != nil && *r.Header.SpyDisplayName == name)
}

func (r *Replay) HasSniper(name string) bool {
	return r.Header.SniperUserName == name ||
		(r.Header.SniperDisplayName != nil && *r.Header.SniperDisplayName == name)
}

func (r *Replay) HasPlayer(name string) bool {
	return r.HasSpy(name) || r.HasSniper(name)
}

func (r *Replay) IsSpyWin() bool {
	res := r.Header.Result.GameResult
	return res == MissionsWin || res == CivilianShot
}

func (r *Replay) IsSniperWin() bool {
	res := r.Header.Result.GameResult
	return res == SpyShot || res == SpyTimeout
}

func (r *Replay) IsWinFor(name string) bool {
	return r.HasSpy(name) && r.IsSpyWin() || r.HasSniper(name) && r.IsSniperWin()
}

// IsLossFor isn't just !IsWinFor, a game that's still in progress is neither.
func (r *Replay) IsLossFor(name string) bool {
	return r.HasSpy(name) && r.IsSniperWin() || r.HasSniper(name) && r.IsSpyWin()
}

func (r *Replay) WinnerRole() string {
	if r.IsSpyWin() {
		return Spy
	} else if r.IsSniperWin() {
		return Sniper
	} else {
		return ""
	}
}

func (r *Replay) WinnerName() string {
	if r.WinnerRole() == Spy {
		return r.SpyName()
	} else if r.WinnerRole() == Sniper {
		return r.SniperName()
	} else {
		return ""
	}
}

func (r *Replay) MissionsCompleted() int {
	return len(r.Header.Result.CompletedMissions)
}

// IsCountdown reports whether the spy finished enough missions to start the mission win
// countdown.
func (r *Replay) IsCountdown() bool {
	return r.MissionsCompleted() == int(r.Header.Result.GameMode.Required)
}

// MissionsReached is like IsCountdown but counts overshooting too.
func (r *Replay) MissionsReached() bool {
	return r.MissionsCompleted() >= int(r.Header.Result.GameMode.Required)
}
