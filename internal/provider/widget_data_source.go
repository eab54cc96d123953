package provider

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/ankek/terraform-provider-taskchart/internal/parser"
	"github.com/ankek/terraform-provider-taskchart/internal/processing"
	"github.com/ankek/terraform-provider-taskchart/internal/renderer"
	"github.com/hashicorp/terraform-plugin-framework-validators/int64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/listvalidator"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensure provider defined types fully satisfy framework interfaces.
var _ datasource.DataSource = &WidgetDataSource{}
var _ datasource.DataSourceWithConfigure = &WidgetDataSource{}

// DefaultWidgetID is the host element id when widget_id is not set.
const DefaultWidgetID = "widget"

// WidgetDataSource defines the data source implementation.
type WidgetDataSource struct {
	generator *DashboardGenerator
}

func NewWidgetDataSource() datasource.DataSource {
	return &WidgetDataSource{
		generator: NewDashboardGenerator("", nil),
	}
}

// WidgetDataSourceModel describes the data source data model.
type WidgetDataSourceModel struct {
	ID               types.String  `tfsdk:"id"`
	WidgetID         types.String  `tfsdk:"widget_id"`
	Kind             types.String  `tfsdk:"kind"`
	NameX            types.String  `tfsdk:"name_x"`
	RotateX          types.Float64 `tfsdk:"rotate_x"`
	FormatX          types.String  `tfsdk:"format_x"`
	FormatDateX      types.String  `tfsdk:"format_date_x"`
	FormatY          types.String  `tfsdk:"format_y"`
	Controls         types.Bool    `tfsdk:"controls"`
	Guide            types.Bool    `tfsdk:"guide"`
	ShowMaxMin       types.Bool    `tfsdk:"show_max_min"`
	Title            types.String  `tfsdk:"title"`
	TitleClass       types.String  `tfsdk:"title_class"`
	Description      types.String  `tfsdk:"description"`
	DescriptionClass types.String  `tfsdk:"description_class"`
	NameY            types.String  `tfsdk:"name_y"`
	LastRowClass     types.String  `tfsdk:"lastrow_class"`
	View             types.Int64   `tfsdk:"view"`
	DataPath         types.String  `tfsdk:"data_path"`
	DataURL          types.String  `tfsdk:"data_url"`
	DataJSON         types.String  `tfsdk:"data_json"`
	Text             types.List    `tfsdk:"text"`
	Source           types.String  `tfsdk:"source"`
	Output           types.Int64   `tfsdk:"output"`
	Iteration        types.Int64   `tfsdk:"iteration"`
	HTML             types.String  `tfsdk:"html"`
	Status           types.String  `tfsdk:"status"`
}

func (d *WidgetDataSource) Metadata(ctx context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_widget"
}

func optionalString(description string, validators ...validator.String) schema.StringAttribute {
	return schema.StringAttribute{
		MarkdownDescription: description,
		Optional:            true,
		Validators:          validators,
	}
}

func optionalBool(description string) schema.BoolAttribute {
	return schema.BoolAttribute{MarkdownDescription: description, Optional: true}
}

func (d *WidgetDataSource) Schema(ctx context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	sourcesExcept := func(self string) []path.Expression {
		var exprs []path.Expression
		for _, name := range []string{"data_path", "data_url", "data_json", "text"} {
			if name != self {
				exprs = append(exprs, path.MatchRoot(name))
			}
		}
		return exprs
	}

	resp.Schema = schema.Schema{
		MarkdownDescription: "Renders one task result widget and returns its HTML.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				MarkdownDescription: "Data source identifier",
			},
			"widget_id": optionalString("Id of the host element. Default is `"+DefaultWidgetID+"`.",
				stringvalidator.LengthAtLeast(1)),
			"kind": schema.StringAttribute{
				MarkdownDescription: "Widget kind.",
				Required:            true,
				Validators: []validator.String{
					stringvalidator.OneOf(renderer.KindNames()...),
				},
			},
			"name_x": optionalString("X axis name."),
			"rotate_x": schema.Float64Attribute{
				MarkdownDescription: "X tick label rotation in degrees (Lines only).",
				Optional:            true,
			},
			"format_x":          optionalString("X tick number format. Default is `" + renderer.DefaultXFormat + "`."),
			"format_date_x":     optionalString("X tick date format (strftime). Takes precedence over `format_x`."),
			"format_y":          optionalString("Y tick number format. Default is `" + renderer.DefaultYFormat + "`."),
			"controls":          optionalBool("Show chart controls."),
			"guide":             optionalBool("Show the interactive guideline."),
			"show_max_min":      optionalBool("Always show the first and last tick."),
			"title":             optionalString("Title shown above the widget."),
			"title_class":       optionalString("CSS class of the title. Default is `h2`."),
			"description":       optionalString("Description shown under the title."),
			"description_class": optionalString("CSS class of the description. Default is `h3`."),
			"name_y":            optionalString("Y axis label shown above the chart."),
			"lastrow_class":     optionalString("CSS class of the last table row."),
			"view": schema.Int64Attribute{
				MarkdownDescription: "Histogram view index.",
				Optional:            true,
				Validators: []validator.Int64{
					int64validator.AtLeast(0),
				},
			},
			"data_path": optionalString("Path to a JSON data file.",
				stringvalidator.LengthAtLeast(1),
				stringvalidator.ConflictsWith(sourcesExcept("data_path")...)),
			"data_url": optionalString("URL of the JSON data.",
				stringvalidator.LengthAtLeast(1),
				stringvalidator.ConflictsWith(sourcesExcept("data_url")...)),
			"data_json": optionalString("Inline JSON data.",
				stringvalidator.ConflictsWith(sourcesExcept("data_json")...)),
			"text": schema.ListAttribute{
				MarkdownDescription: "Lines of a TextArea widget.",
				ElementType:         types.StringType,
				Optional:            true,
				Validators: []validator.List{
					listvalidator.ConflictsWith(sourcesExcept("text")...),
				},
			},
			"source": optionalString("Results processing chart the data is a workload report for. "+
				"`additive_output` and `complete_output` show what the scenario reported.",
				stringvalidator.OneOf(processing.SourceNames()...)),
			"output": schema.Int64Attribute{
				MarkdownDescription: "Position of the scenario output item, for the output sources.",
				Optional:            true,
				Validators: []validator.Int64{
					int64validator.AtLeast(0),
				},
			},
			"iteration": schema.Int64Attribute{
				MarkdownDescription: "Iteration whose complete output is shown, starting at 1. Default is 1.",
				Optional:            true,
				Validators: []validator.Int64{
					int64validator.AtLeast(1),
				},
			},
			"html": schema.StringAttribute{
				MarkdownDescription: "Rendered widget HTML.",
				Computed:            true,
			},
			"status": schema.StringAttribute{
				MarkdownDescription: "Render outcome: `rendered`, `no_data`, `hidden` or `unknown_kind`.",
				Computed:            true,
			},
		},
	}
}

func (d *WidgetDataSource) Configure(ctx context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if req.ProviderData == nil {
		return
	}
	pd, ok := req.ProviderData.(*ProviderData)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected Data Source Configure Type",
			fmt.Sprintf("Expected *ProviderData, got: %T. Please report this issue to the provider developers.", req.ProviderData),
		)
		return
	}
	d.generator = NewDashboardGenerator(pd.Token, pd.Logger)
}

// widgetConfig maps the model onto a widget configuration.
func (m WidgetDataSourceModel) widgetConfig(ctx context.Context) (parser.WidgetConfig, error) {
	attrs := parser.Attrs{}
	setString := func(key string, v types.String) {
		if !v.IsNull() && !v.IsUnknown() {
			attrs[key] = v.ValueString()
		}
	}
	setBool := func(key string, v types.Bool) {
		if !v.IsNull() && !v.IsUnknown() {
			attrs[key] = v.ValueBool()
		}
	}

	setString("kind", m.Kind)
	setString("name_x", m.NameX)
	setString("format_x", m.FormatX)
	setString("format_date_x", m.FormatDateX)
	setString("format_y", m.FormatY)
	setString("title", m.Title)
	setString("title_class", m.TitleClass)
	setString("description", m.Description)
	setString("description_class", m.DescriptionClass)
	setString("name_y", m.NameY)
	setString("lastrow_class", m.LastRowClass)
	setBool("controls", m.Controls)
	setBool("guide", m.Guide)
	setBool("show_max_min", m.ShowMaxMin)
	if !m.RotateX.IsNull() {
		attrs["rotate_x"] = m.RotateX.ValueFloat64()
	}
	if !m.View.IsNull() {
		attrs["view"] = int(m.View.ValueInt64())
	}

	widgetAttrs, err := parser.WidgetAttributes(attrs)
	if err != nil {
		return parser.WidgetConfig{}, err
	}

	w := parser.WidgetConfig{
		ID:         DefaultWidgetID,
		Attributes: widgetAttrs,
		DataPath:   m.DataPath.ValueString(),
		DataURL:    m.DataURL.ValueString(),
		DataJSON:   m.DataJSON.ValueString(),
		Source:     m.Source.ValueString(),
	}
	if !m.Output.IsNull() && !m.Output.IsUnknown() {
		w.OutputIndex = int(m.Output.ValueInt64())
	}
	if !m.Iteration.IsNull() && !m.Iteration.IsUnknown() {
		w.Iteration = int(m.Iteration.ValueInt64())
	}
	if id := m.WidgetID.ValueString(); id != "" {
		w.ID = id
	}
	if !m.Text.IsNull() && !m.Text.IsUnknown() {
		lines := []string{}
		if diags := m.Text.ElementsAs(ctx, &lines, false); diags.HasError() {
			return parser.WidgetConfig{}, fmt.Errorf("invalid text: %v", diags)
		}
		w.Text = lines
	}
	return w, nil
}

func (d *WidgetDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var data WidgetDataSourceModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	wc, err := data.widgetConfig(ctx)
	if err != nil {
		resp.Diagnostics.AddError("Invalid widget configuration", err.Error())
		return
	}

	widget, status, err := d.generator.RenderWidget(ctx, wc)
	if err != nil {
		resp.Diagnostics.AddError("Failed to render widget", err.Error())
		return
	}

	tflog.Debug(ctx, "rendered widget", map[string]interface{}{
		"widget": wc.ID,
		"kind":   string(widget.Attributes().Widget),
		"status": status.String(),
	})

	html := widget.HTML()
	data.HTML = types.StringValue(html)
	data.Status = types.StringValue(status.String())

	hash := sha256.Sum256([]byte(wc.ID + "\x00" + html))
	data.ID = types.StringValue(fmt.Sprintf("%x", hash[:8]))

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}
