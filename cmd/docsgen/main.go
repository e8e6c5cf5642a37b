package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/emberhold-games/emberhold/internal/game"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

func main() {
	root := filepath.Join("docs", "reference", "catalogs")
	if err := os.MkdirAll(root, 0o755); err != nil {
		fatal(err)
	}

	assets := game.DefaultAssets()

	files := []docFile{
		generateItemsDoc(assets),
		generateFuelsDoc(assets),
		generateWeaponsDoc(assets),
		generateRecipesDoc(assets),
		generateKitDoc(assets),
	}
	for _, f := range files {
		path := filepath.Join(root, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	index := generateCatalogIndex(files)
	indexPath := filepath.Join(root, "README.md")
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", indexPath)

	schemaPath := filepath.Join("docs", "reference", "schema", "assets.schema.json")
	if err := writeAssetSchema(schemaPath); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", schemaPath)
}

func generateCatalogIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Data Catalogs\n\n")
	b.WriteString("Generated from the current Go source using `go run ./cmd/docsgen`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

func generateItemsDoc(assets *game.AssetTable) docFile {
	items := assets.AllItems()
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})

	var b strings.Builder
	b.WriteString("# Items\n\n")
	b.WriteString("Source: `internal/game/assets.yaml` (`items`).\n\n")
	b.WriteString(fmt.Sprintf("Total items: **%d**.\n\n", len(items)))
	b.WriteString("| ID | Name | Mass (g) | Flammable | Weapon | Description |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, s := range items {
		b.WriteString("| ")
		b.WriteString(escape(string(s.ID)))
		b.WriteString(" | ")
		b.WriteString(escape(s.Name))
		b.WriteString(" | ")
		b.WriteString(formatFloat(s.MassGrams))
		b.WriteString(" | ")
		b.WriteString(yesNo(s.Flammable()))
		b.WriteString(" | ")
		b.WriteString(yesNo(s.Weapon != nil))
		b.WriteString(" | ")
		b.WriteString(escape(s.Description))
		b.WriteString(" |\n")
	}

	return docFile{Name: "items.md", Title: "Items", Content: b.String()}
}

func generateFuelsDoc(assets *game.AssetTable) docFile {
	var items []game.ItemSpec
	for _, s := range assets.AllItems() {
		if s.Flammable() {
			items = append(items, s)
		}
	}
	// The fuel ladder reads best smallest first.
	sort.Slice(items, func(i, j int) bool {
		if items[i].Fuel.BurnEnergy != items[j].Fuel.BurnEnergy {
			return items[i].Fuel.BurnEnergy < items[j].Fuel.BurnEnergy
		}
		return items[i].ID < items[j].ID
	})

	var b strings.Builder
	b.WriteString("# Fuels\n\n")
	b.WriteString("Source: `internal/game/assets.yaml` (`items[].fuel`).\n\n")
	b.WriteString(fmt.Sprintf("Total fuels: **%d**.\n\n", len(items)))
	b.WriteString("A fresh fuel ignites once its absorbed energy reaches burn energy times\n")
	b.WriteString("the activation coefficient, and it only absorbs while the fire sits above\n")
	b.WriteString("its minimum activation temperature.\n\n")
	b.WriteString("| ID | Name | Burn Energy | Burn Temp (K) | Activation Coefficient | Ignition Cost | Min Activation (K) | Energy per Gram |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, s := range items {
		fuel := *s.Fuel
		b.WriteString("| ")
		b.WriteString(escape(string(s.ID)))
		b.WriteString(" | ")
		b.WriteString(escape(s.Name))
		b.WriteString(" | ")
		b.WriteString(formatFloat(fuel.BurnEnergy))
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%.2f", fuel.BurnTemperature))
		b.WriteString(" | ")
		b.WriteString(formatFloat(fuel.ActivationCoefficient))
		b.WriteString(" | ")
		b.WriteString(formatFloat(fuel.BurnEnergy * fuel.ActivationCoefficient))
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%.2f", fuel.MinActivationTemperature))
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%.2f", fuel.BurnEnergy/s.MassGrams))
		b.WriteString(" |\n")
	}

	return docFile{Name: "fuels.md", Title: "Fuels", Content: b.String()}
}

func generateWeaponsDoc(assets *game.AssetTable) docFile {
	var items []game.ItemSpec
	for _, s := range assets.AllItems() {
		if s.Weapon != nil {
			items = append(items, s)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})

	var b strings.Builder
	b.WriteString("# Weapons\n\n")
	b.WriteString("Source: `internal/game/assets.yaml` (`items[].weapon`).\n\n")
	b.WriteString("Weapon blocks are carried for external asset tables; nothing in the\n")
	b.WriteString("fire simulation swings them.\n\n")
	b.WriteString(fmt.Sprintf("Total weapons: **%d**.\n\n", len(items)))
	b.WriteString("| ID | Name | Hit Chance | Damage |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, s := range items {
		weapon := *s.Weapon
		b.WriteString("| ")
		b.WriteString(escape(string(s.ID)))
		b.WriteString(" | ")
		b.WriteString(escape(s.Name))
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%.0f%%", weapon.HitChance*100))
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%s-%s", formatFloat(weapon.MinDamage), formatFloat(weapon.MaxDamage)))
		b.WriteString(" |\n")
	}

	return docFile{Name: "weapons.md", Title: "Weapons", Content: b.String()}
}

func generateRecipesDoc(assets *game.AssetTable) docFile {
	recipes := assets.Recipes().All()

	var b strings.Builder
	b.WriteString("# Recipes\n\n")
	b.WriteString("Source: `internal/game/assets.yaml` (`recipes`), listed in resolution\n")
	b.WriteString("order: crafting a product tries each matching recipe top to bottom.\n\n")
	b.WriteString(fmt.Sprintf("Total recipes: **%d**.\n\n", len(recipes)))
	b.WriteString("| Products | Ingredients | Craft Time | Cancel Time (max) |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, r := range recipes {
		b.WriteString("| ")
		b.WriteString(escape(formatCounts(assets, r.Products)))
		b.WriteString(" | ")
		b.WriteString(escape(formatCounts(assets, r.Ingredients)))
		b.WriteString(" | ")
		b.WriteString(formatFloat(r.CraftTime))
		b.WriteString(" | ")
		b.WriteString(formatFloat(r.CraftTime / 4))
		b.WriteString(" |\n")
	}

	return docFile{Name: "recipes.md", Title: "Recipes", Content: b.String()}
}

func generateKitDoc(assets *game.AssetTable) docFile {
	player := assets.PlayerDefaults()

	var b strings.Builder
	b.WriteString("# Starting Kit\n\n")
	b.WriteString("Source: `internal/game/assets.yaml` (`player.starting_kit`).\n\n")
	b.WriteString("| Item | Count | Each (g) | Total (g) |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	var total float64
	for _, ic := range player.StartingKit {
		each := assets.ItemMass(ic.Item)
		line := each * float64(ic.Count)
		total += line
		b.WriteString("| ")
		b.WriteString(escape(assets.DisplayName(ic.Item)))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(ic.Count))
		b.WriteString(" | ")
		b.WriteString(formatFloat(each))
		b.WriteString(" | ")
		b.WriteString(formatFloat(line))
		b.WriteString(" |\n")
	}
	b.WriteString(fmt.Sprintf("\nKit mass: **%sg** of **%sg** pack capacity.\n",
		formatFloat(total), formatFloat(player.InventoryCapacity)))

	return docFile{Name: "starting-kit.md", Title: "Starting Kit", Content: b.String()}
}

func writeAssetSchema(outPath string) error {
	reflector := jsonschema.Reflector{}
	schema := reflector.Reflect(new(game.AssetFile))
	schema.Title = "Emberhold Asset Table"
	schema.Description = "Validates asset files loaded with the --assets flag."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}

func formatCounts(assets *game.AssetTable, items []game.ItemCount) string {
	if len(items) == 0 {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, ic := range items {
		parts = append(parts, fmt.Sprintf("%d x %s", ic.Count, assets.DisplayName(ic.Item)))
	}
	return strings.Join(parts, ", ")
}

func formatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", "<br>")
	return v
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
