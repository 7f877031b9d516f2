package room

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type RoomDTO struct {
	Code        string    `json:"code"`
	HostID      string    `json:"hostId"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"imageUrl"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty" example:"medium"`
	MaxPlayers  int       `json:"maxPlayers"`
	Players     []string  `json:"players"`
	Status      string    `json:"status" example:"waiting"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Room status values.
const (
	StatusWaiting   = "waiting"
	StatusPlaying   = "playing"
	StatusCompleted = "completed"
)

const (
	defaultDifficulty = "medium"
	defaultMaxPlayers = 8

	// Attempts at a unique code before giving up. With 36^6 codes this
	// only trips when the table is pathologically full.
	maxCodeAttempts = 50
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrGameInProgress = errors.New("game already in progress")
	ErrRoomFull       = errors.New("room is full")
	ErrCodesExhausted = errors.New("could not allocate a unique room code")
)

type CreateRoomInput struct {
	HostID      string
	Name        string
	ImageURL    string
	Description string
	Difficulty  string
	MaxPlayers  int
}

type IRoomService interface {
	CreateRoom(ctx context.Context, in CreateRoomInput) (*RoomDTO, error)
	GetRoom(ctx context.Context, code string) (*RoomDTO, error)
	JoinRoom(ctx context.Context, code, playerID string) (*RoomDTO, error)
}

type roomService struct {
	db *sql.DB
}

func NewRoomService(db *sql.DB) IRoomService {
	return &roomService{db: db}
}

// CreateRoom inserts a new room under a freshly generated code, retrying
// on the (rare) code collision. The host is the room's first player.
func (svc *roomService) CreateRoom(ctx context.Context, in CreateRoomInput) (*RoomDTO, error) {
	if in.Difficulty == "" {
		in.Difficulty = defaultDifficulty
	}
	if in.MaxPlayers == 0 {
		in.MaxPlayers = defaultMaxPlayers
	}

	const insertRoomQ = `
	  INSERT INTO rooms (code, host_id, name, image_url, description,
	                     difficulty, max_players, status)
	       VALUES ($1, $2, $3, $4, $5, $6, $7, 'waiting')
	  ON CONFLICT (code) DO NOTHING
	  RETURNING created_at`

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := GenerateCode()

		var createdAt time.Time
		err := svc.db.QueryRowContext(ctx, insertRoomQ,
			code, in.HostID, in.Name, in.ImageURL, in.Description,
			in.Difficulty, in.MaxPlayers,
		).Scan(&createdAt)
		if errors.Is(err, sql.ErrNoRows) {
			continue // code already taken, roll again
		}
		if err != nil {
			return nil, err
		}

		const insertHostQ = `
		  INSERT INTO room_players (room_code, player_id)
		      VALUES ($1, $2)
		  ON CONFLICT DO NOTHING`
		if _, err := svc.db.ExecContext(ctx, insertHostQ, code, in.HostID); err != nil {
			return nil, err
		}

		return &RoomDTO{
			Code:        code,
			HostID:      in.HostID,
			Name:        in.Name,
			ImageURL:    in.ImageURL,
			Description: in.Description,
			Difficulty:  in.Difficulty,
			MaxPlayers:  in.MaxPlayers,
			Players:     []string{in.HostID},
			Status:      StatusWaiting,
			CreatedAt:   createdAt,
		}, nil
	}
	return nil, ErrCodesExhausted
}

func (svc *roomService) GetRoom(ctx context.Context, code string) (*RoomDTO, error) {
	code = NormalizeCode(code)

	const roomQ = `
	  SELECT code, host_id, name, image_url, description,
	         difficulty, max_players, status, created_at
	    FROM rooms WHERE code = $1`

	dto := &RoomDTO{}
	err := svc.db.QueryRowContext(ctx, roomQ, code).Scan(
		&dto.Code, &dto.HostID, &dto.Name, &dto.ImageURL, &dto.Description,
		&dto.Difficulty, &dto.MaxPlayers, &dto.Status, &dto.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}

	dto.Players, err = svc.playersOf(ctx, code)
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// JoinRoom adds the player to a waiting, non-full room. Re-joining a room
// the player is already listed in succeeds without duplicating them.
func (svc *roomService) JoinRoom(ctx context.Context, code, playerID string) (*RoomDTO, error) {
	code = NormalizeCode(code)

	tx, err := svc.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var status string
	var maxPlayers int
	err = tx.QueryRowContext(ctx,
		`SELECT status, max_players FROM rooms WHERE code = $1 FOR UPDATE`, code,
	).Scan(&status, &maxPlayers)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	if status != StatusWaiting {
		return nil, ErrGameInProgress
	}

	var member bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM room_players WHERE room_code = $1 AND player_id = $2)`,
		code, playerID,
	).Scan(&member)
	if err != nil {
		return nil, err
	}

	if !member {
		var count int
		err = tx.QueryRowContext(ctx,
			`SELECT count(*) FROM room_players WHERE room_code = $1`, code,
		).Scan(&count)
		if err != nil {
			return nil, err
		}
		if count >= maxPlayers {
			return nil, ErrRoomFull
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO room_players (room_code, player_id) VALUES ($1, $2)`,
			code, playerID)
		if err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return svc.GetRoom(ctx, code)
}

func (svc *roomService) playersOf(ctx context.Context, code string) ([]string, error) {
	rows, err := svc.db.QueryContext(ctx,
		`SELECT player_id FROM room_players WHERE room_code = $1 ORDER BY joined_at`, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]string, 0, defaultMaxPlayers)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
