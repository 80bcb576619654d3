package pack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/tohu/internal/imagegen"
	"github.com/abhisek/tohu/internal/logger"
	"github.com/abhisek/tohu/internal/prompt"
)

// DraftSource produces the raw pack draft. *TextClient implements it.
type DraftSource interface {
	Fetch(ctx context.Context, in Input) (json.RawMessage, error)
}

// ImageRenderer renders one picture and never fails. *imagegen.Client
// implements it.
type ImageRenderer interface {
	Render(ctx context.Context, role, prompt, label string, seed int32) imagegen.Result
}

// Service runs the pack pipeline.
type Service struct {
	text   DraftSource
	images ImageRenderer
	log    *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewService wires the pipeline. Both collaborators are required.
func NewService(text DraftSource, images ImageRenderer, log *logger.Logger) *Service {
	return &Service{
		text:   text,
		images: images,
		log:    logger.OrNop(log).With("component", "pack"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// imageJob is one picture to render, written to its own slot of the result.
type imageJob struct {
	key    string
	role   string
	label  string
	prompt string
}

// Generate builds a complete pack for in, or returns a *GenerationError when
// the text model fails. Image failures never abort a pack.
func (s *Service) Generate(ctx context.Context, in Input) (*Pack, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	log := s.log.With("theme", in.Theme, "mode", string(in.Mode()))
	start := time.Now()

	raw, err := s.text.Fetch(ctx, in)
	if err != nil {
		log.Warn("text generation failed", "error", err.Error())
		return nil, err
	}

	res := Resolve(raw, in)
	cs := res.Components
	sentence := Compose(cs, in.Theme)
	seed := prompt.SceneSeed(in.Theme)

	jobs := imageJobs(cs, in, sentence, seed)
	results := make([]imagegen.Result, len(jobs))

	var g errgroup.Group
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = s.images.Render(ctx, job.role, job.prompt, job.label, seed)
			return nil
		})
	}
	// Render never fails; errors become placeholders.
	g.Wait()

	images := make(map[string]string, len(jobs))
	prompts := make(map[string]string, len(jobs))
	order := make([]string, 0, len(jobs))
	placeholders := 0
	for i, job := range jobs {
		images[job.key] = results[i].DataURI
		prompts[job.key] = job.prompt
		order = append(order, job.key)
		if results[i].Placeholder {
			placeholders++
		}
	}

	p := &Pack{
		PackID:             s.newID(),
		GeneratedAt:        s.now().UTC(),
		Theme:              in.Theme,
		Level:              in.Level,
		Subject:            in.Subject,
		Activity:           in.Activity,
		Mode:               cs.Mode,
		LanguageSteps:      res.LanguageSteps,
		LearningPrompts:    res.LearningPrompts,
		SentenceNZSL:       sentence.NZSL,
		SentenceEN:         sentence.English,
		Sentence:           sentence,
		TeacherTip:         res.TeacherTip,
		PackContent:        buildContent(cs, sentence, images, prompts),
		SceneImages:        images,
		ImageOrder:         order,
		SemanticComponents: cs.All(),
		NZSLStoryPrompt:    res.NZSLStoryPrompt,
		ActivityWeb:        res.ActivityWeb,
		StoryScaffold:      res.StoryScaffold,
		MathDetails:        res.MathDetails,
	}

	log.Info("pack generated",
		"pack_id", p.PackID,
		"fallback_slots", countFallbacks(cs),
		"placeholder_images", placeholders,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return p, nil
}

// imageJobs lists the three slot pictures in slot order, then the scene.
func imageJobs(cs ComponentSet, in Input, sentence SentencePayload, seed int32) []imageJob {
	jobs := make([]imageJob, 0, len(cs.Slots)+1)
	labels := make([]string, 0, len(cs.Slots))
	for _, s := range cs.Slots {
		c := s.Component
		jobs = append(jobs, imageJob{
			key:    s.ImageKey,
			role:   s.Role,
			label:  c.Label,
			prompt: prompt.Image(in.Theme, s.Role, c.Label, c.SignGloss, seed),
		})
		labels = append(labels, c.Label)
	}

	scene := strings.Join(labels, ", ")
	if in.Keywords != "" {
		scene += ". Context keywords: " + in.Keywords
	}
	jobs = append(jobs, imageJob{
		key:    SceneKey,
		role:   prompt.RoleScene,
		label:  in.Theme,
		prompt: prompt.Image(in.Theme, prompt.RoleScene, scene, sentence.NZSL, seed),
	})
	return jobs
}

// buildContent lays out Whole Scene, the three slots, then Whole Again. Both
// whole-scene steps show the same scene picture.
func buildContent(cs ComponentSet, sentence SentencePayload, images, prompts map[string]string) []ContentItem {
	items := make([]ContentItem, 0, 5)
	items = append(items, ContentItem{
		Order:              1,
		Phase:              PhaseWholeScene,
		ImageRole:          RoleSceneIntro,
		ImageDescription:   prompts[SceneKey],
		PedagogicalPurpose: "Introduce the whole scene so tamariki see the full story before the parts.",
		LanguageFocus:      fmt.Sprintf("Point to the picture and sign the whole sentence: %s. Say it in English too: %q", sentence.NZSL, sentence.English),
		ImageDataURL:       images[SceneKey],
	})

	for i, s := range cs.Slots {
		items = append(items, ContentItem{
			Order:              i + 2,
			Phase:              s.Phase,
			ImageRole:          s.Role,
			ImageDescription:   prompts[s.ImageKey],
			PedagogicalPurpose: fmt.Sprintf("Isolate the %s so tamariki can focus on one part of the sentence.", s.Role),
			LanguageFocus:      slotScript(s.Role, s.Component),
			ImageDataURL:       images[s.ImageKey],
		})
	}

	items = append(items, ContentItem{
		Order:              5,
		Phase:              PhaseWholeAgain,
		ImageRole:          RoleSceneReview,
		ImageDescription:   prompts[SceneKey],
		PedagogicalPurpose: "Return to the whole scene so tamariki put the parts back together.",
		LanguageFocus:      fmt.Sprintf("Sign the sentence again together: %s. Invite tamariki to point to each part as they sign it.", sentence.NZSL),
		ImageDataURL:       images[SceneKey],
	})
	return items
}

func slotScript(role string, c SemanticComponent) string {
	switch role {
	case "noun":
		return fmt.Sprintf("Who or what is it? Sign %s while pointing to the %s.", c.SignGloss, c.Label)
	case "verb":
		return fmt.Sprintf("What is it doing? Sign %s and act out %q together.", c.SignGloss, c.Label)
	case "location":
		return fmt.Sprintf("Where is it happening? Sign %s and find the %s in the picture.", c.SignGloss, c.Label)
	case "number":
		return fmt.Sprintf("How many? Count together, then sign %s.", c.SignGloss)
	case "object":
		return fmt.Sprintf("What are we counting? Sign %s for the %s.", c.SignGloss, c.Label)
	default:
		return fmt.Sprintf("Where are they? Sign %s for the %s.", c.SignGloss, c.Label)
	}
}

func countFallbacks(cs ComponentSet) int {
	n := 0
	for _, s := range cs.Slots {
		if s.Fallback {
			n++
		}
	}
	return n
}
