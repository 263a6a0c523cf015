package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rshoplabs/shopbot/internal/intent"
	"github.com/rshoplabs/shopbot/internal/pending"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.reply(chatID, msgWelcome)
	case "help":
		b.reply(chatID, msgHelp)
	case "products":
		b.runDirect(ctx, chatID, intent.ActionListProducts)
	case "categories":
		b.runDirect(ctx, chatID, intent.ActionListCategories)
	case "brands":
		b.runDirect(ctx, chatID, intent.ActionListBrands)
	case "clearimages":
		if count := b.tracker.Clear(userID); count > 0 {
			b.reply(chatID, fmt.Sprintf("🗑 dropped %d uploaded image(s).\nYou can send new ones.", count))
		} else {
			b.reply(chatID, msgNoImages)
		}
	case "setproduct":
		b.tracker.SetMode(userID, pending.ModeProduct)
		b.reply(chatID, fmt.Sprintf("📦 mode: product\nThe next images belong to a product (up to %d).", b.tracker.ProductLimit()))
	case "setcategory":
		b.tracker.SetMode(userID, pending.ModeCategory)
		b.reply(chatID, "📂 mode: category\nThe next image belongs to a category (one image only).")
	}
}

// runDirect dispatches a list action without going through the
// interpreter; the shortcut commands map one-to-one onto actions.
func (b *Bot) runDirect(ctx context.Context, chatID int64, action intent.Action) {
	result := b.exec.Execute(ctx, intent.Command{Action: action})
	b.reply(chatID, result.Message)
}

func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	// Limit check comes before the upload so a full entry never touches
	// storage.
	if err := b.tracker.CanAppend(userID); err != nil {
		b.reply(chatID, limitMessage(err))
		return
	}

	processing, hasProcessing := b.reply(chatID, msgUploading)

	// Renditions are ordered by size; take the largest.
	photo := msg.Photo[len(msg.Photo)-1]
	fileURL, err := b.api.GetFileDirectURL(photo.FileID)
	if err != nil {
		b.logger.Error("resolve file url failed", slog.Any("error", err))
		b.clearProcessing(chatID, processing, hasProcessing)
		b.reply(chatID, fmt.Sprintf("❌ image upload failed: %v", err))
		return
	}

	result, err := b.fetchAndStore(ctx, fileURL)
	if err != nil {
		b.logger.Error("image upload failed", slog.Any("error", err))
		b.clearProcessing(chatID, processing, hasProcessing)
		b.reply(chatID, fmt.Sprintf("❌ image upload failed: %v", err))
		return
	}

	appended, err := b.tracker.Append(userID, result.MediaID)
	if err != nil {
		// A concurrent mode switch can still fill the entry between the
		// pre-check and the append.
		b.clearProcessing(chatID, processing, hasProcessing)
		b.reply(chatID, limitMessage(err))
		return
	}

	b.clearProcessing(chatID, processing, hasProcessing)

	snap := b.tracker.Snapshot(userID)
	if snap.Mode == pending.ModeCategory {
		b.reply(chatID, fmt.Sprintf(
			"✅ image uploaded for the category!\n🆔 Media ID: %d\n🔗 %s\n\n💡 now describe the category",
			result.MediaID, result.URL))
		return
	}

	pinnedText := ""
	if appended.Pinned {
		pinnedText = "⭐ this will be the primary image\n"
	}
	b.reply(chatID, fmt.Sprintf(
		"✅ image %d uploaded!\n🆔 Media ID: %d\n%s📊 total images: %d\n🔗 %s\n\n💡 send another image or describe the product",
		appended.Count, result.MediaID, pinnedText, appended.Count, result.URL))
}

func (b *Bot) fetchAndStore(ctx context.Context, fileURL string) (mediaUpload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return mediaUpload{}, err
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return mediaUpload{}, fmt.Errorf("fetch file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return mediaUpload{}, fmt.Errorf("fetch file: status %d", resp.StatusCode)
	}

	uploaded, err := b.media.UploadImage(ctx, resp.Body, fileExt(fileURL))
	if err != nil {
		return mediaUpload{}, err
	}
	return mediaUpload{MediaID: uploaded.MediaID, URL: uploaded.URL}, nil
}

type mediaUpload struct {
	MediaID int64
	URL     string
}

func fileExt(fileURL string) string {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return ".jpg"
	}
	if ext := path.Ext(parsed.Path); ext != "" {
		return ext
	}
	return ".jpg"
}

func limitMessage(err error) string {
	if errors.Is(err, pending.ErrCategoryImageLimit) {
		return "⚠️ a category can only have one image!\nUse /clearimages to replace it."
	}
	return fmt.Sprintf("⚠️ %v\nUse /clearimages to start over.", err)
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	b.logger.Info("message received", slog.Int64("user_id", userID))
	processing, hasProcessing := b.reply(chatID, msgProcessing)

	// The snapshot is taken before dispatch and reused for linking so a
	// concurrent upload cannot shift what "pending" meant for this turn.
	snap := b.tracker.Snapshot(userID)
	cmd := b.interpreter.Resolve(ctx, snap.Annotate(text))
	result := b.exec.Execute(ctx, cmd)

	created := result.Success && result.CreatedID != 0
	switch {
	case created && cmd.Action == intent.ActionAddProduct && snap.Mode == pending.ModeProduct && !snap.Empty():
		linked, err := b.media.LinkToProduct(ctx, snap.References, result.CreatedID)
		if err != nil {
			result.Message += fmt.Sprintf("\n⚠️ product created but media linking failed (%d of %d linked)", linked, len(snap.References))
		} else {
			result.Message += fmt.Sprintf("\n📸 %d image(s) linked to the product", linked)
		}
	case created && cmd.Action == intent.ActionAddCategory && snap.Mode == pending.ModeCategory && !snap.Empty():
		if err := b.media.LinkToCategory(ctx, snap.References[0], result.CreatedID); err != nil {
			result.Message += "\n⚠️ category created but media linking failed"
		} else {
			result.Message += "\n📸 image linked to the category"
		}
	}

	b.clearProcessing(chatID, processing, hasProcessing)
	b.reply(chatID, result.Message)

	if result.Success && (cmd.Action == intent.ActionAddProduct || cmd.Action == intent.ActionAddCategory) {
		b.tracker.Clear(userID)
	}
}

func (b *Bot) clearProcessing(chatID int64, processing tgbotapi.Message, hasProcessing bool) {
	if hasProcessing {
		b.deleteMessage(chatID, processing.MessageID)
	}
}
