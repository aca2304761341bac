package telegram

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"

	"github.com/pavelc4/vidgrab-bot/internal/callback"
	"github.com/pavelc4/vidgrab-bot/internal/provider"
)

var ErrNoMessageID = errors.New("message id missing from updates")

// Sender implements handler.Messenger on top of raw MTProto calls. Texts are
// given in the HTML subset understood by ParseHTML.
type Sender struct {
	api   *tg.Client
	peers *Peers
}

func NewSender(api *tg.Client, peers *Peers) *Sender {
	return &Sender{api: api, peers: peers}
}

func (s *Sender) SendText(ctx context.Context, chatID int64, text string, kb callback.Keyboard) (int, error) {
	peer, err := s.peers.Resolve(chatID)
	if err != nil {
		return 0, err
	}
	msg, entities := ParseHTML(text)

	updates, err := s.api.MessagesSendMessage(ctx, &tg.MessagesSendMessageRequest{
		Peer:        peer,
		Message:     msg,
		Entities:    entities,
		ReplyMarkup: Markup(kb),
		NoWebpage:   true,
		RandomID:    time.Now().UnixNano(),
	})
	if err != nil {
		return 0, errors.Wrap(err, "send message")
	}
	return messageID(updates)
}

func (s *Sender) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, kb callback.Keyboard) (int, error) {
	peer, err := s.peers.Resolve(chatID)
	if err != nil {
		return 0, err
	}
	msg, entities := ParseHTML(caption)

	updates, err := s.api.MessagesSendMedia(ctx, &tg.MessagesSendMediaRequest{
		Peer:        peer,
		Media:       &tg.InputMediaPhotoExternal{URL: photoURL},
		Message:     msg,
		Entities:    entities,
		ReplyMarkup: Markup(kb),
		RandomID:    time.Now().UnixNano(),
	})
	if err != nil {
		return 0, errors.Wrap(err, "send photo")
	}
	return messageID(updates)
}

// EditText replaces the text of a message. Leaving kb empty removes the
// inline keyboard.
func (s *Sender) EditText(ctx context.Context, chatID int64, msgID int, text string, kb callback.Keyboard) error {
	peer, err := s.peers.Resolve(chatID)
	if err != nil {
		return err
	}
	msg, entities := ParseHTML(text)

	_, err = s.api.MessagesEditMessage(ctx, &tg.MessagesEditMessageRequest{
		Peer:        peer,
		ID:          msgID,
		Message:     msg,
		Entities:    entities,
		ReplyMarkup: Markup(kb),
		NoWebpage:   true,
	})
	if err != nil && !tgerr.Is(err, "MESSAGE_NOT_MODIFIED") {
		return errors.Wrap(err, "edit message")
	}
	return nil
}

// EditCaption replaces the caption of a media message. MTProto edits
// captions through the same call as texts.
func (s *Sender) EditCaption(ctx context.Context, chatID int64, msgID int, caption string, kb callback.Keyboard) error {
	return s.EditText(ctx, chatID, msgID, caption, kb)
}

func (s *Sender) Delete(ctx context.Context, chatID int64, msgID int) error {
	peer, err := s.peers.Resolve(chatID)
	if err != nil {
		return err
	}

	if ch, ok := peer.(*tg.InputPeerChannel); ok {
		_, err = s.api.ChannelsDeleteMessages(ctx, &tg.ChannelsDeleteMessagesRequest{
			Channel: &tg.InputChannel{ChannelID: ch.ChannelID, AccessHash: ch.AccessHash},
			ID:      []int{msgID},
		})
	} else {
		_, err = s.api.MessagesDeleteMessages(ctx, &tg.MessagesDeleteMessagesRequest{
			Revoke: true,
			ID:     []int{msgID},
		})
	}
	return errors.Wrap(err, "delete message")
}

func (s *Sender) SendAudio(ctx context.Context, chatID int64, path, title string) error {
	file, err := s.upload(ctx, chatID, path)
	if err != nil {
		return err
	}
	return s.sendMedia(ctx, chatID, audioMedia(file, path, title), "")
}

func (s *Sender) SendVideo(ctx context.Context, chatID int64, path, caption string, meta provider.VideoMeta) error {
	file, err := s.upload(ctx, chatID, path)
	if err != nil {
		return err
	}
	return s.sendMedia(ctx, chatID, videoMedia(file, path, meta), caption)
}

func (s *Sender) sendMedia(ctx context.Context, chatID int64, media tg.InputMediaClass, caption string) error {
	peer, err := s.peers.Resolve(chatID)
	if err != nil {
		return err
	}
	msg, entities := ParseHTML(caption)

	_, err = s.api.MessagesSendMedia(ctx, &tg.MessagesSendMediaRequest{
		Peer:     peer,
		Media:    media,
		Message:  msg,
		Entities: entities,
		RandomID: time.Now().UnixNano(),
	})
	return errors.Wrap(err, "send media")
}

func (s *Sender) AnswerCallback(ctx context.Context, queryID int64, text string) error {
	_, err := s.api.MessagesSetBotCallbackAnswer(ctx, &tg.MessagesSetBotCallbackAnswerRequest{
		QueryID: queryID,
		Message: text,
	})
	return errors.Wrap(err, "answer callback")
}

func messageID(updates tg.UpdatesClass) (int, error) {
	var list []tg.UpdateClass
	switch u := updates.(type) {
	case *tg.UpdateShortSentMessage:
		return u.ID, nil
	case *tg.Updates:
		list = u.Updates
	case *tg.UpdatesCombined:
		list = u.Updates
	}
	for _, update := range list {
		switch v := update.(type) {
		case *tg.UpdateNewMessage:
			if m, ok := v.Message.(*tg.Message); ok {
				return m.ID, nil
			}
		case *tg.UpdateNewChannelMessage:
			if m, ok := v.Message.(*tg.Message); ok {
				return m.ID, nil
			}
		case *tg.UpdateMessageID:
			return v.ID, nil
		}
	}
	return 0, ErrNoMessageID
}
