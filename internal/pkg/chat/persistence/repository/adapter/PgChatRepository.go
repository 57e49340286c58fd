package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/domain"
	repository "github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/persistence/repository/port"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

var _ repository.ChatRepository = (*PgChatRepository)(nil)

func (r *PgChatRepository) FindByPair(ctx context.Context, userA, userB string) (*chat.Conversation, error) {
	var c chat.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, user_a::text, user_b::text, created_at
		FROM conversation
		WHERE user_a = $1::uuid AND user_b = $2::uuid
	`, userA, userB).Scan(&c.ID, &c.UserA, &c.UserB, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateByPair upserts on the unique pair constraint. The no-op DO UPDATE
// makes RETURNING yield the row in both the insert and the conflict case, so
// two users first-contacting each other simultaneously converge on one row.
func (r *PgChatRepository) CreateByPair(ctx context.Context, userA, userB string) (*chat.Conversation, error) {
	var c chat.Conversation
	err := r.pool.QueryRow(ctx, `
		INSERT INTO conversation (user_a, user_b)
		VALUES ($1::uuid, $2::uuid)
		ON CONFLICT (user_a, user_b) DO UPDATE SET user_a = EXCLUDED.user_a
		RETURNING id::text, user_a::text, user_b::text, created_at
	`, userA, userB).Scan(&c.ID, &c.UserA, &c.UserB, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, conversationID, senderID, body string) (*chat.Message, error) {
	m := chat.Message{ConversationID: conversationID, SenderID: senderID, Message: body}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO message (conversation_id, sender_id, message)
		VALUES ($1::uuid, $2::uuid, $3)
		RETURNING id::text, read, created_at
	`, conversationID, senderID, body).Scan(&m.ID, &m.Read, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgChatRepository) MarkMessagesRead(ctx context.Context, conversationID, senderID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE message SET read = true
		WHERE conversation_id = $1::uuid AND sender_id = $2::uuid AND read = false
	`, conversationID, senderID)
	return err
}

func (r *PgChatRepository) ListMessages(ctx context.Context, conversationID string) ([]chat.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, sender_id::text, message, read, created_at
		FROM message
		WHERE conversation_id = $1::uuid
		ORDER BY created_at DESC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Message, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *PgChatRepository) ListContacts(ctx context.Context, userID string) ([]chat.Contact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id::text, u.username, u.name, u.ava,
		       m.id::text, m.conversation_id::text, m.sender_id::text, m.message, m.read, m.created_at
		FROM conversation c
		JOIN "user" u
		  ON u.id = CASE WHEN c.user_a = $1::uuid THEN c.user_b ELSE c.user_a END
		LEFT JOIN LATERAL (
			SELECT id, conversation_id, sender_id, message, read, created_at
			FROM message
			WHERE conversation_id = c.id
			ORDER BY created_at DESC
			LIMIT 1
		) m ON true
		WHERE (c.user_a = $1::uuid OR c.user_b = $1::uuid)
		  AND u.access_failed_count = 0
		ORDER BY m.created_at DESC NULLS LAST
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []chat.Contact
	for rows.Next() {
		var (
			ct                            chat.Contact
			msgID, convID, senderID, body *string
			read                          *bool
			createdAt                     *time.Time
		)
		if err := rows.Scan(&ct.User.ID, &ct.User.Username, &ct.User.Name, &ct.User.Ava,
			&msgID, &convID, &senderID, &body, &read, &createdAt); err != nil {
			return nil, err
		}
		if msgID != nil {
			ct.Message = &chat.Message{
				ID: *msgID, ConversationID: *convID, SenderID: *senderID,
				Message: *body, Read: *read, CreatedAt: *createdAt,
			}
		}
		contacts = append(contacts, ct)
	}
	return contacts, rows.Err()
}

func (r *PgChatRepository) ListUncontacted(ctx context.Context, userID string) ([]chat.Contact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id::text, u.username, u.name, u.ava
		FROM "user" u
		WHERE u.id <> $1::uuid
		  AND u.access_failed_count = 0
		  AND NOT EXISTS (
			SELECT 1 FROM conversation c
			WHERE (c.user_a = $1::uuid AND c.user_b = u.id)
			   OR (c.user_b = $1::uuid AND c.user_a = u.id)
		  )
		ORDER BY u.username
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []chat.Contact
	for rows.Next() {
		var ct chat.Contact
		if err := rows.Scan(&ct.User.ID, &ct.User.Username, &ct.User.Name, &ct.User.Ava); err != nil {
			return nil, err
		}
		contacts = append(contacts, ct)
	}
	return contacts, rows.Err()
}
