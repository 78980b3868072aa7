package web

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
)

// RoomShell renders the single in-game page. The view name decides which
// section the script draws; everything else comes from the API after the
// websocket reports a change.
func RoomShell(view, roomID, roundID, playerID string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		boot, err := json.Marshal(map[string]string{
			"view":     view,
			"roomId":   roomID,
			"roundId":  roundID,
			"playerId": playerID,
		})
		if err != nil {
			return err
		}
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Tutti Frutti</title>
  </head>
  <body>
    <main class="shell">
      <header class="hero compact">
        <span class="tag">Tutti Frutti</span>
        <div id="roomHeader"></div>
      </header>
      <section id="content" class="panel">Loading...</section>
      <div id="status" class="result"></div>
    </main>

    <script id="boot" type="application/json">`)
		_, _ = w.Write(boot)
		_, _ = io.WriteString(w, `</script>
    <script>
      const boot = JSON.parse(document.getElementById("boot").textContent);
      const header = document.getElementById("roomHeader");
      const content = document.getElementById("content");
      const status = document.getElementById("status");

      let playerId = boot.playerId || localStorage.getItem("playerId") || "";
      if (boot.playerId) {
        localStorage.setItem("playerId", boot.playerId);
      }

      function esc(value) {
        const div = document.createElement("div");
        div.textContent = value == null ? "" : String(value);
        return div.innerHTML;
      }

      function withPlayer(path) {
        return playerId ? path + "?playerId=" + encodeURIComponent(playerId) : path;
      }

      async function api(path, body) {
        const res = await fetch(path, body === undefined ? {} : {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify(body)
        });
        const data = await res.json();
        if (!res.ok) {
          throw new Error(data.error || "Request failed.");
        }
        return data;
      }

      async function post(path, body) {
        status.textContent = "";
        try {
          return await api(path, body);
        } catch (err) {
          status.textContent = err.message;
          return null;
        }
      }

      function renderHeader(room) {
        header.innerHTML =
          "<h1>Room " + esc(room.join_code) + "</h1>" +
          "<p>" + esc(room.player_count) + " players, " +
          esc(room.ready_count) + " ready</p>";
      }

      function isOrganizer(room) {
        return playerId !== "" && room.organizer_id === playerId;
      }

      function renderLobby(room) {
        let html = "<h2>Lobby</h2><ul class=\"players\">";
        for (const p of room.players) {
          html += "<li>" + esc(p.name) + (p.is_organizer ? " (organizer)" : "") + "</li>";
        }
        html += "</ul>";
        if (isOrganizer(room)) {
          html += "<h3>Categories</h3><form id=\"startForm\">";
          for (let i = 0; i < 5; i++) {
            html += "<input name=\"cat" + i + "\" maxlength=\"30\" placeholder=\"Category " + (i + 1) + "\" required/>";
          }
          html += "<button type=\"submit\" class=\"primary\">Start game</button></form>";
        } else {
          html += "<p>Waiting for the organizer to start the game.</p>";
        }
        content.innerHTML = html;
        const form = document.getElementById("startForm");
        if (form) {
          form.addEventListener("submit", async (event) => {
            event.preventDefault();
            const categories = [];
            for (let i = 0; i < 5; i++) {
              categories.push(form.elements["cat" + i].value.trim());
            }
            await post("/api/rooms/" + boot.roomId + "/start", { categories });
          });
        }
      }

      function renderPlay(room) {
        const round = room.round;
        if (!round) {
          content.innerHTML = "<p>Waiting for the round.</p>";
          return;
        }
        let html = "<h2>Round " + esc(round.number) + ": letter <strong>" +
          esc(round.letter) + "</strong></h2>";
        html += "<form id=\"answersForm\">";
        room.categories.forEach((cat, i) => {
          html += "<label>" + esc(cat) +
            "<input name=\"ans" + i + "\" maxlength=\"30\" autocomplete=\"off\"/></label>";
        });
        html += "<button type=\"submit\" class=\"primary\">Submit answers</button></form>";
        if (isOrganizer(room)) {
          const age = Date.now() - new Date(round.created_at).getTime();
          if (age < 3000) {
            html += "<button id=\"rerollBtn\" class=\"secondary\">Reroll letter</button>";
          }
          html += "<button id=\"endBtn\" class=\"secondary\">End round</button>";
        }
        content.innerHTML = html;
        document.getElementById("answersForm").addEventListener("submit", async (event) => {
          event.preventDefault();
          const answers = [];
          room.categories.forEach((_, i) => {
            answers.push(event.target.elements["ans" + i].value.trim());
          });
          const ok = await post("/api/rooms/" + boot.roomId + "/answers", {
            round_id: round.id, player_id: playerId, answers
          });
          if (ok) {
            status.textContent = "Answers saved. You can resubmit until the round ends.";
          }
        });
        const reroll = document.getElementById("rerollBtn");
        if (reroll) {
          reroll.addEventListener("click", () => post("/api/rounds/reroll", {
            room_id: boot.roomId, round_id: round.id, player_id: playerId
          }));
        }
        const end = document.getElementById("endBtn");
        if (end) {
          end.addEventListener("click", () => post("/api/rooms/" + boot.roomId + "/end-round", {
            round_id: round.id, player_id: playerId
          }));
        }
      }

      async function renderScore(room) {
        const round = room.round;
        const result = await api("/api/rooms/" + boot.roomId + "/results/" + round.id);
        let html = "<h2>Score round " + esc(result.number) + " (letter " +
          esc(result.letter) + ")</h2><form id=\"scoreForm\">";
        for (const entry of result.players) {
          html += "<h3>" + esc(entry.name) + "</h3>";
          for (const answer of entry.answers) {
            html += "<label>" + esc(room.categories[answer.category_index] || "") +
              ": " + (answer.text ? esc(answer.text) : "<em>blank</em>") +
              "<input type=\"number\" min=\"0\" value=\"" + esc(answer.points) +
              "\" data-answer=\"" + esc(answer.answer_id) + "\"/></label>";
          }
        }
        html += "<button type=\"submit\" class=\"primary\">Save scores</button></form>";
        html += "<button id=\"finalizeBtn\" class=\"secondary\">Finalize round</button>";
        content.innerHTML = html;
        document.getElementById("scoreForm").addEventListener("submit", async (event) => {
          event.preventDefault();
          const assignments = [];
          for (const input of event.target.querySelectorAll("input[data-answer]")) {
            assignments.push({
              answer_id: input.dataset.answer,
              points: parseInt(input.value, 10) || 0,
              player_id: playerId
            });
          }
          const ok = await post("/api/rooms/" + boot.roomId + "/scores", { assignments });
          if (ok) {
            status.textContent = "Scores saved.";
          }
        });
        document.getElementById("finalizeBtn").addEventListener("click", () =>
          post("/api/rooms/" + boot.roomId + "/finalize", {
            round_id: round.id, player_id: playerId
          }));
      }

      async function renderResults(room) {
        const roundId = boot.roundId || (room.round && room.round.id);
        const result = await api("/api/rooms/" + boot.roomId + "/results/" + roundId);
        let html = "<h2>Round " + esc(result.number) + " results</h2><table><tbody>";
        for (const entry of result.players) {
          html += "<tr><td>" + esc(entry.name) + "</td><td>" + esc(entry.total) + "</td></tr>";
        }
        html += "</tbody></table>";
        if (isOrganizer(room)) {
          html += "<button id=\"nextBtn\" class=\"primary\">Next round</button>";
          html += "<button id=\"finishBtn\" class=\"secondary\">Finish game</button>";
        } else {
          html += "<p>Waiting for the organizer.</p>";
        }
        content.innerHTML = html;
        const next = document.getElementById("nextBtn");
        if (next) {
          next.addEventListener("click", () =>
            post("/api/rooms/" + boot.roomId + "/next-round", { player_id: playerId }));
        }
        const finish = document.getElementById("finishBtn");
        if (finish) {
          finish.addEventListener("click", () =>
            post("/api/rooms/" + boot.roomId + "/finish", { player_id: playerId }));
        }
      }

      async function renderRanking() {
        const data = await api("/api/rooms/" + boot.roomId + "/ranking");
        let html = "<h2>Final ranking</h2><ol>";
        for (const entry of data.ranking) {
          html += "<li value=\"" + esc(entry.position) + "\">" + esc(entry.name) +
            ": " + esc(entry.total) + " points</li>";
        }
        html += "</ol><a href=\"/\">Back to start</a>";
        content.innerHTML = html;
      }

      async function render() {
        const room = await api("/api/rooms/" + boot.roomId);
        renderHeader(room);
        switch (boot.view) {
          case "lobby":
            renderLobby(room);
            break;
          case "play":
            renderPlay(room);
            break;
          case "score":
            await renderScore(room);
            break;
          case "results":
            await renderResults(room);
            break;
          case "ranking":
            await renderRanking();
            break;
        }
      }

      async function sync() {
        try {
          await render();
        } catch (err) {
          status.textContent = err.message;
        }
        try {
          const view = await api("/api/rooms/" + boot.roomId + "/view" +
            (playerId ? "?playerId=" + encodeURIComponent(playerId) : ""));
          if (view.navigate && !window.location.pathname.startsWith(view.path.split("?")[0])) {
            window.location.href = view.path;
            return;
          }
        } catch (err) {
          // view hints are best effort
        }
      }

      function connect() {
        const proto = window.location.protocol === "https:" ? "wss://" : "ws://";
        const socket = new WebSocket(proto + window.location.host + "/ws/rooms/" + boot.roomId);
        socket.addEventListener("message", () => { sync(); });
        socket.addEventListener("close", () => { setTimeout(connect, 2000); });
      }

      sync();
      connect();
    </script>
  </body>
</html>
`)
		return nil
	})
}
