package monitor

import "time"

// Status lines shown in the dashboard footer
const (
	StatusAwaiting = "SYSTEM ONLINE: AWAITING DATA STREAM..."
	StatusLive     = "LIVE DATA STREAM ACTIVE"
	StatusPaused   = "SIMULATION PAUSED"

	NoticeLaunch = "NEW THREAT DETECTED :: MISSILE LAUNCH"
	NoticeReport = "HIGH PRIORITY TRANSMISSION :: OFFICIAL BRIEFING RECEIVED"
	NoticeMedia  = "VISUAL INTEL PACKET RECEIVED"
)

const (
	launchNoticeDuration = 1500 * time.Millisecond
	reportNoticeDuration = 2000 * time.Millisecond
	mediaNoticeDuration  = 1500 * time.Millisecond
)

// statusLine tracks the footer text: a base line plus an expiring notice
type statusLine struct {
	base    string
	notice  string
	expires time.Time
}

func newStatusLine() statusLine {
	return statusLine{base: StatusAwaiting}
}

func (s *statusLine) announce(notice string, now time.Time, d time.Duration) {
	s.notice = notice
	s.expires = now.Add(d)
}

func (s *statusLine) text(now time.Time) string {
	if s.notice != "" && now.Before(s.expires) {
		return s.notice
	}
	return s.base
}
