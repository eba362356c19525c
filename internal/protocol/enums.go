package protocol

import (
	"fmt"
	"strconv"
)

// --- identifier-style enums (wire form is the lowercase variant name) ---

// LoginType distinguishes a brand new login from a returning one and
// the legacy "time trial mode" variant.
type LoginType int

const (
	LoginTypeNr LoginType = iota
	LoginTypeReg
	LoginTypeTtm
)

func (v LoginType) String() string {
	switch v {
	case LoginTypeNr:
		return "nr"
	case LoginTypeReg:
		return "reg"
	case LoginTypeTtm:
		return "ttm"
	default:
		return "nr"
	}
}

func ParseLoginType(s string) (LoginType, error) {
	switch s {
	case "nr":
		return LoginTypeNr, nil
	case "reg":
		return LoginTypeReg, nil
	case "ttm":
		return LoginTypeTtm, nil
	}
	return 0, fmt.Errorf("protocol: bad login type %q", s)
}

// ChallengeFail enumerates the reasons a duo challenge can fail.
type ChallengeFail int

const (
	ChallengeFailRefuse ChallengeFail = iota
	ChallengeFailNoChall
	ChallengeFailCByOther
	ChallengeFailNoUser
	ChallengeFailCOther
)

func (v ChallengeFail) String() string {
	switch v {
	case ChallengeFailRefuse:
		return "refuse"
	case ChallengeFailNoChall:
		return "nochall"
	case ChallengeFailCByOther:
		return "cbyother"
	case ChallengeFailNoUser:
		return "nouser"
	case ChallengeFailCOther:
		return "cother"
	default:
		return "refuse"
	}
}

func ParseChallengeFail(s string) (ChallengeFail, error) {
	switch s {
	case "refuse":
		return ChallengeFailRefuse, nil
	case "nochall":
		return ChallengeFailNoChall, nil
	case "cbyother":
		return ChallengeFailCByOther, nil
	case "nouser":
		return ChallengeFailNoUser, nil
	case "cother":
		return ChallengeFailCOther, nil
	}
	return 0, fmt.Errorf("protocol: bad challenge fail reason %q", s)
}

// LoginStatus enumerates why a login attempt was rejected.
type LoginStatus int

const (
	LoginStatusNickInUse LoginStatus = iota
	LoginStatusRlf
	LoginStatusInvalidNick
	LoginStatusForbiddenNick
)

func (v LoginStatus) String() string {
	switch v {
	case LoginStatusNickInUse:
		return "nickinuse"
	case LoginStatusRlf:
		return "rlf"
	case LoginStatusInvalidNick:
		return "invalidnick"
	case LoginStatusForbiddenNick:
		return "forbiddennick"
	default:
		return "nickinuse"
	}
}

func ParseLoginStatus(s string) (LoginStatus, error) {
	switch s {
	case "nickinuse":
		return LoginStatusNickInUse, nil
	case "rlf":
		return LoginStatusRlf, nil
	case "invalidnick":
		return LoginStatusInvalidNick, nil
	case "forbiddennick":
		return LoginStatusForbiddenNick, nil
	}
	return 0, fmt.Errorf("protocol: bad login status %q", s)
}

// ErrorType enumerates the fatal handshake-time error codes.
type ErrorType int

const (
	ErrorTypeVerNotOk ErrorType = iota
	ErrorTypeServerFull
)

func (v ErrorType) String() string {
	switch v {
	case ErrorTypeVerNotOk:
		return "vernotok"
	case ErrorTypeServerFull:
		return "serverfull"
	default:
		return "vernotok"
	}
}

func ParseErrorType(s string) (ErrorType, error) {
	switch s {
	case "vernotok":
		return ErrorTypeVerNotOk, nil
	case "serverfull":
		return ErrorTypeServerFull, nil
	}
	return 0, fmt.Errorf("protocol: bad error type %q", s)
}

// KickStyle mirrors the administrative "p kickban" packet's reason
// code, sent as a bare digit '1'..'4' on the wire.
type KickStyle int

const (
	KickStyleKickNow KickStyle = iota + 1
	KickStyleKickBanNow
	KickStyleBanInit
	KickStyleTooManyIPInit
)

func (v KickStyle) String() string {
	return strconv.Itoa(int(v))
}

func ParseKickStyle(s string) (KickStyle, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 4 {
		return 0, fmt.Errorf("protocol: bad kick style %q", s)
	}
	return KickStyle(n), nil
}

// DLobbyType identifies the four lobby/room families. SoloIncognito's
// wire code "1h" is intentionally non-sequential with Solo's "1" —
// that mismatch is in the original protocol, not a typo here.
type DLobbyType int

const (
	DLobbyTypeSolo DLobbyType = iota
	DLobbyTypeSoloIncognito
	DLobbyTypeDuo
	DLobbyTypeMulti
)

func (v DLobbyType) String() string {
	switch v {
	case DLobbyTypeSolo:
		return "1"
	case DLobbyTypeSoloIncognito:
		return "1h"
	case DLobbyTypeDuo:
		return "2"
	case DLobbyTypeMulti:
		return "x"
	default:
		return "1"
	}
}

func ParseDLobbyType(s string) (DLobbyType, error) {
	switch s {
	case "1":
		return DLobbyTypeSolo, nil
	case "1h":
		return DLobbyTypeSoloIncognito, nil
	case "2":
		return DLobbyTypeDuo, nil
	case "x":
		return DLobbyTypeMulti, nil
	}
	return 0, fmt.Errorf("protocol: bad lobby type %q", s)
}

// --- numeric-wire enums ---

type WaterEvent int32

const (
	WaterEventBackToStart WaterEvent = 0
	WaterEventStayOnShore WaterEvent = 1
)

type Difficulty int32

const (
	DifficultyEasy   Difficulty = 1
	DifficultyMedium Difficulty = 2
	DifficultyHard   Difficulty = 3
)

type WeightEnd int32

const (
	WeightEndNone   WeightEnd = 0
	WeightEndLittle WeightEnd = 1
	WeightEndPlenty WeightEnd = 2
)

type Scoring int32

const (
	ScoringScore Scoring = 0
	ScoringTrack Scoring = 1
)

type Collision int32

const (
	CollisionNo  Collision = 0
	CollisionYes Collision = 1
)

type TrackType int32

const (
	TrackTypeAll         TrackType = 0
	TrackTypeBasic       TrackType = 1
	TrackTypeTraditional TrackType = 2
	TrackTypeModern      TrackType = 3
	TrackTypeHoleInOne   TrackType = 4
	TrackTypeShort       TrackType = 5
	TrackTypeLong        TrackType = 6
)

func parseNumericEnum32(field string) (int32, error) {
	n, err := strconv.ParseInt(field, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("protocol: bad numeric enum %q: %w", field, err)
	}
	return int32(n), nil
}

func ParseWaterEvent(s string) (WaterEvent, error) {
	n, err := parseNumericEnum32(s)
	return WaterEvent(n), err
}
func (v WaterEvent) Encode() string { return strconv.Itoa(int(v)) }

func ParseDifficulty(s string) (Difficulty, error) {
	n, err := parseNumericEnum32(s)
	return Difficulty(n), err
}
func (v Difficulty) Encode() string { return strconv.Itoa(int(v)) }

func ParseWeightEnd(s string) (WeightEnd, error) {
	n, err := parseNumericEnum32(s)
	return WeightEnd(n), err
}
func (v WeightEnd) Encode() string { return strconv.Itoa(int(v)) }

func ParseScoring(s string) (Scoring, error) {
	n, err := parseNumericEnum32(s)
	return Scoring(n), err
}
func (v Scoring) Encode() string { return strconv.Itoa(int(v)) }

func ParseCollision(s string) (Collision, error) {
	n, err := parseNumericEnum32(s)
	return Collision(n), err
}
func (v Collision) Encode() string { return strconv.Itoa(int(v)) }

func ParseTrackType(s string) (TrackType, error) {
	n, err := parseNumericEnum32(s)
	return TrackType(n), err
}
func (v TrackType) Encode() string { return strconv.Itoa(int(v)) }
