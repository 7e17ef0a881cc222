package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/alibi/internal/catalog"
	"github.com/sant0-9/alibi/internal/config"
	"github.com/sant0-9/alibi/internal/pipeline"
	"github.com/sant0-9/alibi/internal/speech"
	"github.com/sant0-9/alibi/internal/writer"
)

// pick matches s case-insensitively against a fixed catalogue.
func pick[T ~string](flag, s string, values []T) (T, error) {
	for _, v := range values {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, nil
		}
	}
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	var zero T
	return zero, fmt.Errorf("invalid --%s %q (choose from: %s)", flag, s, strings.Join(names, ", "))
}

func languageFlag(cmd *cobra.Command) (catalog.Language, error) {
	s, _ := cmd.Flags().GetString("language")
	if s == "" {
		s = cfg.Language
	}
	return catalog.ParseLanguage(s)
}

// newOrchestrator wires the real adapters. Speech is only synthesized when
// an audio file was requested.
func newOrchestrator(withAudio bool, log *slog.Logger) (*pipeline.Orchestrator, error) {
	deps, err := pipeline.DepsFromConfig(cfg, log)
	if err != nil {
		return nil, err
	}
	if !withAudio {
		deps.Speaker = nil
	}
	o := pipeline.New(deps)
	o.SetProgressCallback(progressPrinter)
	return o, nil
}

func writeAudio(path string, audio *speech.Audio) {
	if path == "" {
		return
	}
	if audio == nil {
		printWarning("no audio produced")
		return
	}
	if err := os.WriteFile(path, audio.Data, 0644); err != nil {
		printWarning("writing audio: %v", err)
		return
	}
	printSuccess("Audio saved to %s", path)
}

// --- excuse ---

var excuseCmd = &cobra.Command{
	Use:   "excuse",
	Short: "Generate an excuse",
	Long: `Generate an excuse, translate it and rate how believable it is.

Examples:
  alibi excuse --category Work --scenario "Missed a Deadline" --urgency High
  alibi excuse --language Hindi --save --audio excuse.mp3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		categoryStr, _ := f.GetString("category")
		scenarioStr, _ := f.GetString("scenario")
		urgencyStr, _ := f.GetString("urgency")
		save, _ := f.GetBool("save")
		audioPath, _ := f.GetString("audio")
		email, _ := f.GetBool("email")
		share, _ := f.GetBool("share")

		category, err := pick("category", categoryStr, catalog.Categories)
		if err != nil {
			return err
		}
		scenario, err := pick("scenario", scenarioStr, catalog.Scenarios)
		if err != nil {
			return err
		}
		urgency, err := pick("urgency", urgencyStr, catalog.Urgencies)
		if err != nil {
			return err
		}
		lang, err := languageFlag(cmd)
		if err != nil {
			return err
		}
		if !f.Changed("save") {
			save = cfg.AutoSave
		}

		sess, err := newSession()
		if err != nil {
			return err
		}
		log := slog.Default().With("session", sess.ID())

		orch, err := newOrchestrator(audioPath != "", log)
		if err != nil {
			return err
		}

		res, err := orch.Excuse(cmd.Context(), sess, pipeline.ExcuseRequest{
			Category: category,
			Scenario: scenario,
			Urgency:  urgency,
			Language: lang,
			AutoSave: save,
		})
		if err != nil {
			return err
		}

		printDegradations(res.Degradations)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, res.Translated)
		printStatus("Believability", "%s", res.Believability.Badge())
		if res.Saved {
			printSuccess("Saved to favorites")
		}
		if email {
			fmt.Fprintf(out, "\n%s\n", writer.EmailTemplate(res.Translated))
		}
		if share {
			fmt.Fprintf(out, "\n%s\n", writer.WhatsAppURL(res.Translated))
		}
		writeAudio(audioPath, res.Audio)
		return nil
	},
}

func init() {
	f := excuseCmd.Flags()
	f.String("category", string(catalog.CategoryWork), "excuse category")
	f.String("scenario", string(catalog.Scenarios[0]), "situation to excuse")
	f.String("urgency", string(catalog.UrgencyMedium), "Low, Medium or High")
	f.String("language", "", "output language (default from config)")
	f.Bool("save", false, "save the excuse to favorites")
	f.String("audio", "", "write spoken audio to this MP3 file")
	f.Bool("email", false, "also print an email draft")
	f.Bool("share", false, "also print a WhatsApp share link")
}

// --- apology ---

var apologyCmd = &cobra.Command{
	Use:   "apology",
	Short: "Generate an apology",
	RunE: func(cmd *cobra.Command, args []string) error {
		toneStr, _ := cmd.Flags().GetString("tone")
		contextStr, _ := cmd.Flags().GetString("context")
		audioPath, _ := cmd.Flags().GetString("audio")

		tone, err := pick("tone", toneStr, catalog.Tones)
		if err != nil {
			return err
		}
		apologyCtx, err := pick("context", contextStr, catalog.ApologyContexts)
		if err != nil {
			return err
		}
		lang, err := languageFlag(cmd)
		if err != nil {
			return err
		}

		orch, err := newOrchestrator(audioPath != "", slog.Default())
		if err != nil {
			return err
		}
		res, err := orch.Apology(cmd.Context(), pipeline.ApologyRequest{Tone: tone, Context: apologyCtx, Language: lang})
		if err != nil {
			return err
		}

		printDegradations(res.Degradations)
		fmt.Fprintln(cmd.OutOrStdout(), res.Text)
		writeAudio(audioPath, res.Audio)
		return nil
	},
}

func init() {
	f := apologyCmd.Flags()
	f.String("tone", string(catalog.ToneFormal), "Formal, Emotional or Casual")
	f.String("context", string(catalog.ApologyContexts[0]), "Work, School, Family or Friend")
	f.String("language", "", "language for the audio (default from config)")
	f.String("audio", "", "write spoken audio to this MP3 file")
}

// --- emergency ---

var emergencyCmd = &cobra.Command{
	Use:   "emergency",
	Short: "Simulate an urgent call and text message",
	RunE: func(cmd *cobra.Command, args []string) error {
		relationStr, _ := cmd.Flags().GetString("relation")
		typeStr, _ := cmd.Flags().GetString("type")
		audioPath, _ := cmd.Flags().GetString("audio")

		relation, err := pick("relation", relationStr, catalog.Relations)
		if err != nil {
			return err
		}
		kind, err := pick("type", typeStr, catalog.EmergencyTypes)
		if err != nil {
			return err
		}
		lang, err := languageFlag(cmd)
		if err != nil {
			return err
		}

		orch, err := newOrchestrator(audioPath != "", slog.Default())
		if err != nil {
			return err
		}
		msg, err := orch.Emergency(cmd.Context(), pipeline.EmergencyRequest{Relation: relation, Type: kind, Language: lang})
		if err != nil {
			return err
		}

		printDegradations(msg.Degradations)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, msg.CallerLabel)
		fmt.Fprintln(out, msg.SMSText)
		writeAudio(audioPath, msg.Audio)
		return nil
	},
}

func init() {
	f := emergencyCmd.Flags()
	f.String("relation", string(catalog.Relations[0]), "who is calling")
	f.String("type", string(catalog.EmergencyTypes[0]), "kind of emergency")
	f.String("language", "", "language for the audio (default from config)")
	f.String("audio", "", "write spoken audio to this MP3 file")
}

// --- proof ---

var proofCmd = &cobra.Command{
	Use:   "proof",
	Short: "Generate a proof image",
	Long: `Generate a proof image with Stability AI. Needs STABILITY_API_KEY.

Examples:
  alibi proof --type "Hospital Certificate" --name "Asha Rao" --reason "viral fever"
  alibi proof --type "Location Log" --name Ravi --reason accident --out ravi.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		typeStr, _ := cmd.Flags().GetString("type")
		name, _ := cmd.Flags().GetString("name")
		reason, _ := cmd.Flags().GetString("reason")
		out, _ := cmd.Flags().GetString("out")

		kind, err := pick("type", typeStr, catalog.ProofTypes)
		if err != nil {
			return err
		}

		orch, err := newOrchestrator(false, slog.Default())
		if err != nil {
			return err
		}
		proof, err := orch.ProofImage(cmd.Context(), pipeline.ProofImageRequest{Type: kind, Name: name, Reason: reason})
		if err != nil {
			return err
		}

		path := out
		if path == "" {
			path, err = writer.NewWriter(cfg.OutputDir).SaveProof(proof.Type, proof.PNG)
		} else {
			err = os.WriteFile(path, proof.PNG, 0644)
		}
		if err != nil {
			return fmt.Errorf("saving proof: %w", err)
		}

		printSuccess("Proof saved to %s", path)
		return nil
	},
}

func init() {
	f := proofCmd.Flags()
	f.String("type", string(catalog.ProofHospitalCertificate), "Hospital Certificate, WhatsApp Chat or Location Log")
	f.String("name", "", "name shown on the proof")
	f.String("reason", "", "reason shown on the proof")
	f.String("out", "", "output PNG path (default <type>_proof.png in the output dir)")
}

// --- favorites ---

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage saved excuses",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved excuses, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		return listFavorites(cmd.OutOrStdout(), sess.Favorites())
	},
}

func listFavorites(w io.Writer, favs []string) error {
	if len(favs) == 0 {
		printWarning("No favorites yet")
		return nil
	}
	for i := len(favs) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "%d. %s\n", len(favs)-i, favs[i])
	}
	return nil
}

var favoritesTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the most saved excuses",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("n")

		sess, err := newSession()
		if err != nil {
			return err
		}
		for i, fc := range sess.MostSaved(n) {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (%d)\n", i+1, fc.Text, fc.Count)
		}
		return nil
	},
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all favorites",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		if err := sess.ClearFavorites(); err != nil {
			return err
		}
		printSuccess("Favorites cleared")
		return nil
	},
}

func init() {
	favoritesTopCmd.Flags().Int("n", 3, "how many to show")

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesTopCmd)
	favoritesCmd.AddCommand(favoritesClearCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		providerName := cfg.Chat.Provider
		if p := config.GetProvider(cfg.Chat.Provider); p != nil {
			providerName = p.Name
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Chat provider:  %s\n", providerName)
		fmt.Fprintf(out, "Chat model:     %s\n", cfg.Chat.Model)
		fmt.Fprintf(out, "Chat key:       %s\n", config.MaskKey(cfg.Chat.APIKey))
		fmt.Fprintf(out, "Image engine:   %s\n", cfg.Image.Engine)
		fmt.Fprintf(out, "Image key:      %s\n", config.MaskKey(cfg.Image.APIKey))
		fmt.Fprintf(out, "Language:       %s\n", cfg.Language)
		fmt.Fprintf(out, "Auto-save:      %t\n", cfg.AutoSave)
		fmt.Fprintf(out, "Favorites file: %s\n", cfg.FavoritesPath)
		fmt.Fprintf(out, "Output dir:     %s\n", cfg.OutputDir)
		fmt.Fprintf(out, "Log:            %s (%s)\n", cfg.Log.File, cfg.Log.Level)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		if !config.Exists() {
			printWarning("file does not exist yet; run alibi to create it")
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}
