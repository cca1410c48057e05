// package formatter renders reconcile results and bot command output as the
// Spanish chat replies the bot sends (Telegram Markdown)
package formatter

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/castilloh/bandolera/internal/models"
	"github.com/castilloh/bandolera/internal/services"
	"github.com/castilloh/bandolera/internal/tasks"
)

// HelpText is the /help reply.
const HelpText = `*Comandos disponibles*

Manda el nombre de una canción (o un link de Spotify) para agregarla a la playlist.

/remove <canción> - quita una canción de la playlist
/status - estado de la conexión con Spotify
/ping - comprobar que el bot responde
/help - este mensaje`

// PingText is the /ping reply.
const PingText = "🏓 Pong! (bot OK)"

// ReconcileReply renders one reconcile result as a chat reply.
func ReconcileReply(res tasks.Result) string {
	switch res.Outcome {
	case tasks.OutcomeAdded:
		return fmt.Sprintf("✅ Agregada: %s", res.Track.Label())

	case tasks.OutcomeAlreadyPresent:
		return fmt.Sprintf("🔁 Ya estaba en la playlist: %s", res.Track.Label())

	case tasks.OutcomeRemoved:
		if res.Approximate {
			return fmt.Sprintf("🗑️ Eliminada (coincidencia aproximada): %s", res.Track.Label())
		}
		return fmt.Sprintf("🗑️ Eliminada: %s", res.Track.Label())

	case tasks.OutcomeNotPresent:
		return notPresentReply(res.Suggestions)

	case tasks.OutcomeUnresolved:
		return "❌ No encontré esa canción en Spotify. Probá con «Título - Artista» o un link."

	case tasks.OutcomeFailed:
		return failureReply(res.Err)
	}

	return failureReply(res.Err)
}

func notPresentReply(suggestions []tasks.FuzzyMatch) string {
	var buf bytes.Buffer
	buf.WriteString("⚠️ Esa canción no está en la playlist.")

	if len(suggestions) > 0 {
		buf.WriteString("\n\nQuizás quisiste decir:")
		for _, s := range suggestions {
			fmt.Fprintf(&buf, "\n• %s", s.Track.Label())
		}
	}
	return buf.String()
}

func failureReply(err error) string {
	var statusErr *services.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("⚠️ Error HTTP con Spotify: %d", statusErr.Code)
	}
	return fmt.Sprintf("⚠️ Error: %v", err)
}

// StatusReply renders the /status reply from live playlist metadata.
func StatusReply(info *models.PlaylistInfo) string {
	return fmt.Sprintf("✅ Conectado a Spotify\nPlaylist: *%s*\nTracks: %d", info.Name, info.Total)
}

// StatusErrorReply renders the /status reply when the catalog is unreachable.
func StatusErrorReply(err error) string {
	return fmt.Sprintf("⚠️ No pude conectar con Spotify: %v", err)
}
