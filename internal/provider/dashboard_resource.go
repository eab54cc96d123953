package provider

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"

	"github.com/ankek/terraform-provider-taskchart/internal/interfaces"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensure provider defined types fully satisfy framework interfaces.
var _ resource.Resource = &DashboardResource{}
var _ resource.ResourceWithConfigure = &DashboardResource{}
var _ resource.ResourceWithImportState = &DashboardResource{}

func NewDashboardResource() resource.Resource {
	return &DashboardResource{
		generator: NewDashboardGenerator("", nil),
	}
}

// DashboardResource defines the resource implementation.
type DashboardResource struct {
	generator interfaces.DashboardGenerator
}

// DashboardResourceModel describes the resource data model.
type DashboardResourceModel struct {
	ID          types.String `tfsdk:"id"`
	ConfigPath  types.String `tfsdk:"config_path"`
	OutputPath  types.String `tfsdk:"output_path"`
	Title       types.String `tfsdk:"title"`
	WidgetCount types.Int64  `tfsdk:"widget_count"`
	HiddenCount types.Int64  `tfsdk:"hidden_count"`
}

func (r *DashboardResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_dashboard"
}

func (r *DashboardResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Renders the widgets of a dashboard definition into a standalone HTML page.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				MarkdownDescription: "Resource identifier",
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"config_path": schema.StringAttribute{
				MarkdownDescription: "Path to a dashboard `.hcl` file or a directory of them.",
				Required:            true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"output_path": schema.StringAttribute{
				MarkdownDescription: "Path where the HTML page will be saved.",
				Required:            true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"title": schema.StringAttribute{
				MarkdownDescription: "Page title. Overrides the title of the dashboard file.",
				Optional:            true,
			},
			"widget_count": schema.Int64Attribute{
				MarkdownDescription: "Number of widgets on the page.",
				Computed:            true,
			},
			"hidden_count": schema.Int64Attribute{
				MarkdownDescription: "Number of widgets hidden for missing or insufficient data.",
				Computed:            true,
			},
		},
	}
}

func (r *DashboardResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if req.ProviderData == nil {
		return
	}
	pd, ok := req.ProviderData.(*ProviderData)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected Resource Configure Type",
			fmt.Sprintf("Expected *ProviderData, got: %T. Please report this issue to the provider developers.", req.ProviderData),
		)
		return
	}
	r.generator = NewDashboardGenerator(pd.Token, pd.Logger)
}

// apply renders the page and fills the computed attributes.
func (r *DashboardResource) apply(ctx context.Context, data *DashboardResourceModel) diag.Diagnostics {
	var diags diag.Diagnostics

	tflog.Debug(ctx, "rendering dashboard", map[string]interface{}{
		"config_path": data.ConfigPath.ValueString(),
		"output_path": data.OutputPath.ValueString(),
	})

	result, err := r.generator.Generate(ctx, interfaces.DashboardConfig{
		ConfigPath: data.ConfigPath.ValueString(),
		OutputPath: data.OutputPath.ValueString(),
		Title:      data.Title.ValueString(),
	})
	if err != nil {
		diags.AddError("Failed to generate dashboard", err.Error())
		return diags
	}

	data.WidgetCount = types.Int64Value(result.WidgetCount)
	data.HiddenCount = types.Int64Value(result.HiddenCount)
	data.ID = types.StringValue(dashboardID(data.ConfigPath.ValueString(), data.OutputPath.ValueString()))

	tflog.Info(ctx, "dashboard written", map[string]interface{}{
		"output_path":  result.OutputPath,
		"widget_count": result.WidgetCount,
		"hidden_count": result.HiddenCount,
	})
	return diags
}

func dashboardID(configPath, outputPath string) string {
	hash := sha256.Sum256([]byte(configPath + "\x00" + outputPath))
	return fmt.Sprintf("%x", hash[:8])
}

func (r *DashboardResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	var data DashboardResourceModel

	resp.Diagnostics.Append(req.Plan.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(r.apply(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *DashboardResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	var data DashboardResourceModel

	resp.Diagnostics.Append(req.State.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	// Check if output file still exists
	if _, err := os.Stat(data.OutputPath.ValueString()); errors.Is(err, os.ErrNotExist) {
		tflog.Warn(ctx, "dashboard page missing, removing from state", map[string]interface{}{
			"output_path": data.OutputPath.ValueString(),
		})
		resp.State.RemoveResource(ctx)
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *DashboardResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	var data DashboardResourceModel

	resp.Diagnostics.Append(req.Plan.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(r.apply(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *DashboardResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	var data DashboardResourceModel

	resp.Diagnostics.Append(req.State.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	if err := os.Remove(data.OutputPath.ValueString()); err != nil && !errors.Is(err, os.ErrNotExist) {
		resp.Diagnostics.AddWarning("Failed to remove dashboard page", err.Error())
	}
}

func (r *DashboardResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	resource.ImportStatePassthroughID(ctx, path.Root("id"), req, resp)
}
