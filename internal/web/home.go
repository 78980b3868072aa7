package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home(errorFlag string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Tutti Frutti</title>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Tutti Frutti</span>
        <h1>Five categories. One letter. Go.</h1>
        <p>Create a room and share the code, or join with a code from your organizer.</p>
      </header>
`)
		if errorFlag == "room-not-found" {
			_, _ = io.WriteString(w, `      <div class="notice error">That room no longer exists.</div>
`)
		}
		_, _ = io.WriteString(w, `      <section class="panel">
        <div>
          <h2>Create a room</h2>
          <p>You will be the organizer: you pick categories, score answers, and move the game along.</p>
        </div>
        <form id="createForm">
          <input name="organizer_name" placeholder="Your name" autocomplete="name"/>
          <button type="submit" class="primary">Create room</button>
        </form>
        <div id="createResult" class="result"></div>
      </section>

      <section class="panel">
        <div>
          <h2>Join a room</h2>
          <p>Enter the 6-character invitation code and your name.</p>
        </div>
        <form id="joinForm">
          <input name="code" placeholder="Invitation code" maxlength="6" autocomplete="off" required/>
          <input name="name" placeholder="Your name" autocomplete="name" required/>
          <button type="submit" class="secondary">Join room</button>
        </form>
        <div id="joinResult" class="result"></div>
      </section>
    </main>

    <script>
      const createForm = document.getElementById("createForm");
      const createResult = document.getElementById("createResult");
      const joinForm = document.getElementById("joinForm");
      const joinResult = document.getElementById("joinResult");

      createForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        createResult.textContent = "Creating room...";
        const name = createForm.elements.organizer_name.value.trim();
        const res = await fetch("/api/rooms", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ organizer_name: name })
        });
        const data = await res.json();
        if (!res.ok) {
          createResult.textContent = data.error || "Failed to create room.";
          return;
        }
        localStorage.setItem("playerId", data.player_id);
        window.location.href = "/lobby/" + data.room_id + "?playerId=" + data.player_id;
      });

      joinForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        joinResult.textContent = "Joining room...";
        const code = joinForm.elements.code.value.trim().toUpperCase();
        const name = joinForm.elements.name.value.trim();
        const res = await fetch("/api/rooms/" + encodeURIComponent(code) + "/join", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ name })
        });
        const data = await res.json();
        if (!res.ok) {
          joinResult.textContent = data.error || "Failed to join room.";
          return;
        }
        localStorage.setItem("playerId", data.player_id);
        window.location.href = "/lobby/" + data.room_id + "?playerId=" + data.player_id;
      });
    </script>
  </body>
</html>
`)
		return nil
	})
}
